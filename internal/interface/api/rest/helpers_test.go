package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/domain/audit"
	"share-ledger-api/internal/domain/file"
	"share-ledger-api/internal/domain/share"
	domain "share-ledger-api/internal/domain/user"
	jwtSvc "share-ledger-api/internal/infrastructure/jwt"
)

const testSecret = "test-secret"

type FakeUserService struct {
	RegisterFunc       func(ctx context.Context, email, username, password string) (*domain.User, error)
	FindUserByIDFunc   func(ctx context.Context, id domain.UUID) (*domain.User, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindUsersFunc      func(ctx context.Context, page int) (domain.Users, error)
	RecordedActivities []string
}

func (f *FakeUserService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	if f.RegisterFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RegisterFunc(ctx, email, username, password)
}
func (f *FakeUserService) FindUserByID(ctx context.Context, id domain.UUID) (*domain.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.FindByEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByEmailFunc(ctx, email)
}
func (f *FakeUserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	if f.FindUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUsersFunc(ctx, page)
}
func (f *FakeUserService) RecordActivity(_ context.Context, _ domain.UUID, action, _ string) {
	f.RecordedActivities = append(f.RecordedActivities, action)
}

type FakeAuth struct {
	GenerateTokenFunc func(u *domain.User, requestPassword string) (string, error)
}

func (f *FakeAuth) GenerateToken(u *domain.User, requestPassword string) (string, error) {
	if f.GenerateTokenFunc == nil {
		return "", errors.New("not used")
	}
	return f.GenerateTokenFunc(u, requestPassword)
}

type FakeUploadService struct {
	UploadFunc         func(ctx context.Context, ownerUUID domain.UUID, in ports.UploadInput) (*file.Record, error)
	DownloadFunc       func(ctx context.Context, actorUUID domain.UUID, actorRole string, fileID uuid.UUID) (*ports.DownloadInfo, error)
	FindOwnerFilesFunc func(ctx context.Context, ownerUUID domain.UUID, page int) (file.Records, error)
}

func (f *FakeUploadService) Upload(ctx context.Context, ownerUUID domain.UUID, in ports.UploadInput) (*file.Record, error) {
	if f.UploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFunc(ctx, ownerUUID, in)
}
func (f *FakeUploadService) Download(ctx context.Context, actorUUID domain.UUID, actorRole string, fileID uuid.UUID) (*ports.DownloadInfo, error) {
	if f.DownloadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DownloadFunc(ctx, actorUUID, actorRole, fileID)
}
func (f *FakeUploadService) FindOwnerFiles(ctx context.Context, ownerUUID domain.UUID, page int) (file.Records, error) {
	if f.FindOwnerFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindOwnerFilesFunc(ctx, ownerUUID, page)
}

type FakeShareService struct {
	ShareFunc func(ctx context.Context, actorUUID domain.UUID, fileID uuid.UUID, recipientEmail, message string) (*share.Record, error)
	UsageFunc func(ctx context.Context, actorUUID domain.UUID, actorRole string, ownerUUID, recipientUUID domain.UUID) (*share.UsageCounter, error)
}

func (f *FakeShareService) Share(ctx context.Context, actorUUID domain.UUID, fileID uuid.UUID, recipientEmail, message string) (*share.Record, error) {
	if f.ShareFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ShareFunc(ctx, actorUUID, fileID, recipientEmail, message)
}
func (f *FakeShareService) Usage(ctx context.Context, actorUUID domain.UUID, actorRole string, ownerUUID, recipientUUID domain.UUID) (*share.UsageCounter, error) {
	if f.UsageFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UsageFunc(ctx, actorUUID, actorRole, ownerUUID, recipientUUID)
}

type FakeAdminService struct {
	RecentActivityFunc func(ctx context.Context, limit int) (audit.Entries, error)
	RecentSharesFunc   func(ctx context.Context, limit int) (share.Records, error)
}

func (f *FakeAdminService) RecentActivity(ctx context.Context, limit int) (audit.Entries, error) {
	if f.RecentActivityFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RecentActivityFunc(ctx, limit)
}
func (f *FakeAdminService) RecentShares(ctx context.Context, limit int) (share.Records, error) {
	if f.RecentSharesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RecentSharesFunc(ctx, limit)
}

// FakeRevocationStore is an in-memory stand-in for the redis-backed store.
type FakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]struct{}
	Err     error
}

func NewFakeRevocationStore() *FakeRevocationStore {
	return &FakeRevocationStore{revoked: make(map[string]struct{})}
}

func (f *FakeRevocationStore) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[tokenID] = struct{}{}
	return nil
}

func (f *FakeRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[tokenID]
	return ok, nil
}

func signToken(t *testing.T, userUUID domain.UUID, role string) string {
	t.Helper()
	tok, err := jwtSvc.New(testSecret).GenerateJWT(userUUID.String(), role, time.Hour)
	require.NoError(t, err)
	return tok
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doMultipart(t *testing.T, r *gin.Engine, path, fieldName, fileName, contentType string, payload []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = io.Copy(part, bytes.NewReader(payload))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
