package share

import (
	"context"

	"github.com/google/uuid"

	"share-ledger-api/internal/domain/user"
)

type Repository interface {
	// CreateShare persists the share record and folds its byte count into
	// the (owner, recipient) usage counter in one atomic operation, so
	// concurrent shares between the same pair never lose updates.
	CreateShare(ctx context.Context, req *Record) (*Record, error)
	FetchUsage(ctx context.Context, ownerID, recipientID user.ID) (*UsageCounter, error)
	HasShareFor(ctx context.Context, fileUUID uuid.UUID, recipientID user.ID) (bool, error)
	FetchRecentShares(ctx context.Context, limit int) (Records, error)
}
