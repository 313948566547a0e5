package share

import (
	"time"

	"github.com/google/uuid"

	userDB "share-ledger-api/internal/infrastructure/db/postgres/user"
)

type (
	Record struct {
		ID          uint64
		UUID        uuid.UUID
		FileID      uuid.UUID
		OwnerID     *userDB.ID
		RecipientID *userDB.ID

		BytesTransferred int64
		Message          *string

		SharedAt time.Time
	}
	Records []*Record

	UsageCounter struct {
		OwnerID     uint64
		RecipientID uint64

		TotalBytes int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
)
