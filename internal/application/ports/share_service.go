package ports

import (
	"context"

	"github.com/google/uuid"

	"share-ledger-api/internal/domain/share"
	"share-ledger-api/internal/domain/user"
)

type ShareService interface {
	Share(ctx context.Context, actorUUID user.UUID, fileID uuid.UUID, recipientEmail, message string) (*share.Record, error)
	Usage(ctx context.Context, actorUUID user.UUID, actorRole string, ownerUUID, recipientUUID user.UUID) (*share.UsageCounter, error)
}
