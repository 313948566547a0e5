package file

import (
	"time"

	"github.com/google/uuid"

	userDB "share-ledger-api/internal/infrastructure/db/postgres/user"
)

type (
	Record struct {
		ID      uint64
		UUID    uuid.UUID
		OwnerID *userDB.ID

		FileName    string
		ContentType string
		SizeBytes   int64
		StoredPath  string
		RemoteURL   *string

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	Records []*Record
)
