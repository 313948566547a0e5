package share

import (
	"time"

	"github.com/google/uuid"

	"share-ledger-api/internal/domain/user"
)

type (
	// Record is an immutable event recording one file-sharing action.
	// BytesTransferred snapshots the file size at share time.
	Record struct {
		UUID        uuid.UUID
		FileID      uuid.UUID
		OwnerID     user.ID
		RecipientID user.ID

		BytesTransferred int64
		Message          string

		SharedAt time.Time
	}
	Records []*Record

	// UsageCounter is the cumulative byte-transfer total for an
	// (owner, recipient) pair. Its total always equals the sum of
	// BytesTransferred over the pair's share records.
	UsageCounter struct {
		OwnerID     user.ID
		RecipientID user.ID

		TotalBytes int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
)
