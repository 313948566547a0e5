package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"share-ledger-api/internal/domain/file"
	"share-ledger-api/internal/domain/user"
)

type (
	UploadInput struct {
		FileName     string
		ContentType  string
		Body         io.Reader
		DeclaredSize int64
	}

	// DownloadInfo is everything the transport needs to serve a file:
	// stream the local path or redirect to the mirror URL, decided by the
	// location variant.
	DownloadInfo struct {
		FileName    string
		ContentType string
		SizeBytes   int64
		Location    file.Location
	}
)

type UploadService interface {
	Upload(ctx context.Context, ownerUUID user.UUID, in UploadInput) (*file.Record, error)
	Download(ctx context.Context, actorUUID user.UUID, actorRole string, fileID uuid.UUID) (*DownloadInfo, error)
	FindOwnerFiles(ctx context.Context, ownerUUID user.UUID, page int) (file.Records, error)
}
