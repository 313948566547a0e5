package ports

import (
	"context"

	"share-ledger-api/internal/infrastructure/moderation"
)

type Moderation interface {
	Classify(ctx context.Context, localPath string) (moderation.Verdict, error)
}
