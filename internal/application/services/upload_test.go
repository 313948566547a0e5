package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/domain/audit"
	"share-ledger-api/internal/domain/file"
	"share-ledger-api/internal/domain/user"
	"share-ledger-api/internal/infrastructure/mirror"
	"share-ledger-api/internal/infrastructure/moderation"
)

const testMaxUpload = int64(1 << 20)

func passthroughUserRepo(id user.ID) *FakeUserRepo {
	return &FakeUserRepo{
		FetchInternalIDFunc: func(ctx context.Context, _ user.UUID) (user.ID, error) {
			return id, nil
		},
	}
}

func echoFileRepo() *FakeFileRepo {
	return &FakeFileRepo{
		CreateFileFunc: func(ctx context.Context, req *file.Record) (*file.Record, error) {
			out := *req
			out.UUID = uuid.New()
			return &out, nil
		},
	}
}

func newUploadService(
	store ports.ContentStore,
	mirrorPort ports.Mirror,
	moderationPort ports.Moderation,
	fileRepo file.Repository,
	userRepo user.Repository,
	auditRepo *RecordingAuditRepo,
) ports.UploadService {
	return NewUploadService(
		store,
		mirrorPort,
		moderationPort,
		fileRepo,
		&FakeShareRepo{},
		userRepo,
		auditRepo,
		NewFakeMQ(),
		testMaxUpload,
		newTestCounter(),
		zap.NewNop(),
	)
}

func TestUploadService_Upload_LocalOnly(t *testing.T) {
	store := &FakeStore{}
	auditRepo := &RecordingAuditRepo{}
	svc := newUploadService(store, nil, nil, echoFileRepo(), passthroughUserRepo(7), auditRepo)

	payload := []byte("plain text payload")
	rec, err := svc.Upload(context.Background(), uuid.New(), ports.UploadInput{
		FileName:     "Notes Final.TXT",
		ContentType:  "text/plain",
		Body:         bytes.NewReader(payload),
		DeclaredSize: int64(len(payload)),
	})
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, user.ID(7), rec.OwnerID)
	assert.Equal(t, "notes-final.txt", rec.FileName)
	assert.Equal(t, int64(len(payload)), rec.SizeBytes)

	loc, ok := rec.Location.(file.Local)
	require.True(t, ok, "expected a local-only location")

	stored, ok := store.Blobs[loc.Path]
	require.True(t, ok, "bytes must be committed to the store")
	assert.Equal(t, payload, stored)

	assert.Equal(t, []string{audit.ActionUpload}, auditRepo.Actions())
}

func TestUploadService_Upload_PayloadTooLarge(t *testing.T) {
	store := &FakeStore{}
	svc := newUploadService(store, nil, nil, echoFileRepo(), passthroughUserRepo(1), &RecordingAuditRepo{})

	tests := []struct {
		name         string
		declaredSize int64
		bodyLen      int64
	}{
		{"declared size over the limit", testMaxUpload + 1, 10},
		{"actual body over the limit", 10, testMaxUpload + 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			body := bytes.NewReader(make([]byte, tt.bodyLen))
			_, err := svc.Upload(context.Background(), uuid.New(), ports.UploadInput{
				FileName:     "big.bin",
				ContentType:  "application/octet-stream",
				Body:         body,
				DeclaredSize: tt.declaredSize,
			})
			require.ErrorIs(t, err, ErrPayloadTooLarge)
		})
	}

	assert.Empty(t, store.Blobs, "rejected uploads must leave no stored bytes")
}

func TestUploadService_Upload_BlockedContent(t *testing.T) {
	store := &FakeStore{}
	auditRepo := &RecordingAuditRepo{}
	mod := &FakeModeration{
		ClassifyFunc: func(ctx context.Context, localPath string) (moderation.Verdict, error) {
			return moderation.Verdict{Detector: "test", Blocked: true}, nil
		},
	}
	created := false
	fileRepo := &FakeFileRepo{
		CreateFileFunc: func(ctx context.Context, req *file.Record) (*file.Record, error) {
			created = true
			return req, nil
		},
	}
	svc := newUploadService(store, nil, mod, fileRepo, passthroughUserRepo(3), auditRepo)

	_, err := svc.Upload(context.Background(), uuid.New(), ports.UploadInput{
		FileName:     "photo.jpg",
		ContentType:  "image/jpeg",
		Body:         bytes.NewReader([]byte("jpegbytes")),
		DeclaredSize: 9,
	})
	require.ErrorIs(t, err, ErrContentRejected)

	assert.False(t, created, "no metadata record for a blocked upload")
	assert.Len(t, store.Deleted, 1, "the committed file must be removed")
	assert.Empty(t, store.Blobs)
	assert.Equal(t, []string{audit.ActionUploadBlocked}, auditRepo.Actions())
}

func TestUploadService_Upload_SkipsModerationForUnscreenedTypes(t *testing.T) {
	classified := false
	mod := &FakeModeration{
		ClassifyFunc: func(ctx context.Context, localPath string) (moderation.Verdict, error) {
			classified = true
			return moderation.Verdict{Blocked: true}, nil
		},
	}
	svc := newUploadService(&FakeStore{}, nil, mod, echoFileRepo(), passthroughUserRepo(3), &RecordingAuditRepo{})

	rec, err := svc.Upload(context.Background(), uuid.New(), ports.UploadInput{
		FileName:     "report.pdf",
		ContentType:  "application/pdf",
		Body:         bytes.NewReader([]byte("%PDF-")),
		DeclaredSize: 5,
	})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, classified, "non-image content must bypass the gate")
}

func TestUploadService_Upload_DetectorErrorIsPermissive(t *testing.T) {
	auditRepo := &RecordingAuditRepo{}
	mod := &FakeModeration{
		ClassifyFunc: func(ctx context.Context, localPath string) (moderation.Verdict, error) {
			return moderation.Verdict{}, errors.New("classifier down")
		},
	}
	svc := newUploadService(&FakeStore{}, nil, mod, echoFileRepo(), passthroughUserRepo(3), auditRepo)

	rec, err := svc.Upload(context.Background(), uuid.New(), ports.UploadInput{
		FileName:     "photo.png",
		ContentType:  "image/png",
		Body:         bytes.NewReader([]byte("pngbytes")),
		DeclaredSize: 8,
	})
	require.NoError(t, err, "an unavailable verdict must not fail the upload")
	require.NotNil(t, rec)
	assert.Equal(t, []string{audit.ActionNSFWCheckError, audit.ActionUpload}, auditRepo.Actions())
}

func TestUploadService_Upload_MirrorSuccessAndFailure(t *testing.T) {
	t.Run("success records the remote url and provider size", func(t *testing.T) {
		m := &FakeMirror{
			UploadFunc: func(ctx context.Context, localPath, folder, resourceType string) (mirror.Result, error) {
				assert.Equal(t, "image", resourceType)
				return mirror.Result{URL: "https://cdn.example/abc.jpg", Bytes: 4242}, nil
			},
		}
		svc := newUploadService(&FakeStore{}, m, nil, echoFileRepo(), passthroughUserRepo(5), &RecordingAuditRepo{})

		rec, err := svc.Upload(context.Background(), uuid.New(), ports.UploadInput{
			FileName:     "cat.jpg",
			ContentType:  "image/jpeg",
			Body:         bytes.NewReader([]byte("jpegbytes")),
			DeclaredSize: 9,
		})
		require.NoError(t, err)

		loc, ok := rec.Location.(file.Mirrored)
		require.True(t, ok, "expected a mirrored location")
		assert.Equal(t, "https://cdn.example/abc.jpg", loc.URL)
		assert.NotEmpty(t, loc.Path, "the local copy stays authoritative")
		assert.Equal(t, int64(4242), rec.SizeBytes)
	})

	t.Run("failure degrades to local-only", func(t *testing.T) {
		auditRepo := &RecordingAuditRepo{}
		m := &FakeMirror{
			UploadFunc: func(ctx context.Context, localPath, folder, resourceType string) (mirror.Result, error) {
				return mirror.Result{}, errors.New("provider unreachable")
			},
		}
		svc := newUploadService(&FakeStore{}, m, nil, echoFileRepo(), passthroughUserRepo(5), auditRepo)

		rec, err := svc.Upload(context.Background(), uuid.New(), ports.UploadInput{
			FileName:     "cat.jpg",
			ContentType:  "image/jpeg",
			Body:         bytes.NewReader([]byte("jpegbytes")),
			DeclaredSize: 9,
		})
		require.NoError(t, err, "mirror failures must never fail the upload")

		_, ok := rec.Location.(file.Local)
		assert.True(t, ok)
		assert.Equal(t, int64(9), rec.SizeBytes)
		assert.Equal(t, []string{audit.ActionMirrorError, audit.ActionUpload}, auditRepo.Actions())
	})
}

func TestUploadService_Upload_StorageFailure(t *testing.T) {
	store := &FakeStore{PutErr: errors.New("disk full")}
	svc := newUploadService(store, nil, nil, echoFileRepo(), passthroughUserRepo(1), &RecordingAuditRepo{})

	_, err := svc.Upload(context.Background(), uuid.New(), ports.UploadInput{
		FileName:     "a.txt",
		ContentType:  "text/plain",
		Body:         bytes.NewReader([]byte("x")),
		DeclaredSize: 1,
	})
	require.ErrorIs(t, err, ErrStorageWriteFailed)
}

func TestUploadService_Download(t *testing.T) {
	fileID := uuid.New()
	ownerID := user.ID(10)
	rec := &file.Record{
		UUID:        fileID,
		OwnerID:     ownerID,
		FileName:    "doc.pdf",
		ContentType: "application/pdf",
		SizeBytes:   100,
		Location:    file.Local{Path: "/tmp/store/doc"},
	}

	tests := []struct {
		name      string
		actorID   user.ID
		actorRole string
		shared    bool
		record    *file.Record
		wantErr   error
	}{
		{"owner can download", ownerID, user.RoleUser, false, rec, nil},
		{"admin can download", 99, user.RoleAdmin, false, rec, nil},
		{"recipient of a share can download", 42, user.RoleUser, true, rec, nil},
		{"stranger is rejected", 42, user.RoleUser, false, rec, ErrForbidden},
		{"missing file", ownerID, user.RoleUser, false, nil, ErrFileNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fileRepo := &FakeFileRepo{
				FetchFileByIDFunc: func(ctx context.Context, id uuid.UUID) (*file.Record, error) {
					return tt.record, nil
				},
			}
			shareRepo := &FakeShareRepo{
				HasShareForFunc: func(ctx context.Context, fileUUID uuid.UUID, recipientID user.ID) (bool, error) {
					return tt.shared, nil
				},
			}
			svc := NewUploadService(
				&FakeStore{}, nil, nil,
				fileRepo, shareRepo, passthroughUserRepo(tt.actorID),
				&RecordingAuditRepo{}, nil, testMaxUpload, newTestCounter(), zap.NewNop(),
			)

			info, err := svc.Download(context.Background(), uuid.New(), tt.actorRole, fileID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "doc.pdf", info.FileName)
			assert.Equal(t, rec.Location, info.Location)
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"uppercase and spaces", "My Summer Photo.JPG", "my-summer-photo.jpg"},
		{"path traversal stripped", "../../etc/passwd", "passwd"},
		{"windows separators", `C:\Users\me\cat.png`, "cat.png"},
		{"diacritics folded", "r\u00e9sum\u00e9.pdf", "resume.pdf"},
		{"reserved device name", "con.txt", "_con.txt"},
		{"empty becomes placeholder", "", "file"},
		{"only symbols becomes placeholder", "!!!???", "file"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in))
		})
	}
}
