package ports

import (
	"context"
	"time"
)

// RevocationStore tracks invalidated token ids. Consulted on every
// authenticated request before any business logic runs.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
