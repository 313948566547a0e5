package audit

import (
	"context"

	"share-ledger-api/internal/domain/user"
)

type Repository interface {
	Insert(ctx context.Context, userID user.ID, action, details string) error
	FetchRecent(ctx context.Context, limit int) (Entries, error)
}
