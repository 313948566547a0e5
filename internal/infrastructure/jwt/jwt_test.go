package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	s := New("super-secret")
	userID := "2f0c70c1-6f2e-4f41-a6c5-5d8a20d5e001"
	role := "admin"

	tok, err := s.GenerateJWT(userID, role, time.Hour)
	require.NoError(t, err, "GenerateJWT should not error")
	require.NotEmpty(t, tok, "token must not be empty")

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err, "ValidateToken should not error for fresh token")
	require.NotNil(t, claims)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, role, claims.Role)
	assert.NotEmpty(t, claims.ID, "every token carries a unique jti")
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now().Add(-1*time.Second)))
}

func TestGenerateJWT_UniqueTokenIDs(t *testing.T) {
	s := New("super-secret")

	tok1, err := s.GenerateJWT("u", "user", time.Hour)
	require.NoError(t, err)
	tok2, err := s.GenerateJWT("u", "user", time.Hour)
	require.NoError(t, err)

	c1, err := s.ValidateToken(tok1)
	require.NoError(t, err)
	c2, err := s.ValidateToken(tok2)
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID, "two tokens for the same user must be revocable independently")
}

func TestValidateToken_Table(t *testing.T) {
	type fields struct {
		secret string
	}
	type want struct {
		ok  bool
		err string
	}

	makeToken := func(secret string, exp time.Duration) string {
		s := New(secret)
		tok, err := s.GenerateJWT("user-42", "user", exp)
		require.NoError(t, err)
		return tok
	}

	// a structurally valid token missing the jti
	signNoJTI := func(secret string) string {
		claims := Claims{
			UserID: "user-42",
			Role:   "user",
			RegisteredClaims: jwtv5.RegisteredClaims{
				ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		tok, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name   string
		fields fields
		token  string
		want   want
	}{
		{
			name:   "valid token",
			fields: fields{secret: "k1"},
			token:  makeToken("k1", 5*time.Minute),
			want:   want{ok: true},
		},
		{
			name:   "invalid secret (signature mismatch)",
			fields: fields{secret: "k2"},
			token:  makeToken("k1", 5*time.Minute),
			want:   want{ok: false, err: "invalid token"},
		},
		{
			name:   "expired token",
			fields: fields{secret: "k1"},
			token:  makeToken("k1", -1*time.Minute),
			want:   want{ok: false, err: "invalid token"},
		},
		{
			name:   "malformed token string",
			fields: fields{secret: "k1"},
			token:  "not-a-jwt",
			want:   want{ok: false, err: "invalid token"},
		},
		{
			name:   "missing jti",
			fields: fields{secret: "k1"},
			token:  signNoJTI("k1"),
			want:   want{ok: false, err: "missing identity claims"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.fields.secret)

			claims, err := s.ValidateToken(tt.token)
			if tt.want.ok {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, "user-42", claims.UserID)
			} else {
				require.Error(t, err)
				assert.EqualError(t, err, tt.want.err)
				assert.Nil(t, claims)
			}
		})
	}
}
