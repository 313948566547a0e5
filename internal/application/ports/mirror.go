package ports

import (
	"context"

	"share-ledger-api/internal/infrastructure/mirror"
)

// Mirror submits a stored file for a remote copy. Implementations bound
// their own concurrency and timeout; callers treat every failure as
// "proceed local-only".
type Mirror interface {
	Upload(ctx context.Context, localPath, folder, resourceType string) (mirror.Result, error)
}
