package file

import (
	"context"

	"github.com/google/uuid"

	"share-ledger-api/internal/domain/user"
)

type Repository interface {
	FetchFileByID(ctx context.Context, fileUUID uuid.UUID) (*Record, error)
	FetchOwnerFiles(ctx context.Context, ownerID user.ID, page int) (Records, error)
	CreateFile(ctx context.Context, req *Record) (*Record, error)
	SoftDeleteFile(ctx context.Context, fileUUID uuid.UUID) error
}
