package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/domain/user"
	"share-ledger-api/internal/infrastructure/jwt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	jwtService *jwt.Service
	tokenTTL   time.Duration
}

func NewAuthService(
	jwtService *jwt.Service,
	tokenTTL time.Duration,
) ports.Auth {
	return &AuthService{
		jwtService: jwtService,
		tokenTTL:   tokenTTL,
	}
}

func (as *AuthService) GenerateToken(u *user.User, requestPassword string) (string, error) {
	if u.PasswordHash == nil {
		return "", ErrInvalidCredentials
	}
	err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(requestPassword))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(u.UUID.String(), u.Role, as.tokenTTL)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}
