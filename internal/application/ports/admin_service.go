package ports

import (
	"context"

	"share-ledger-api/internal/domain/audit"
	"share-ledger-api/internal/domain/share"
)

type AdminService interface {
	RecentActivity(ctx context.Context, limit int) (audit.Entries, error)
	RecentShares(ctx context.Context, limit int) (share.Records, error)
}
