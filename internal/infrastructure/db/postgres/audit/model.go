package audit

import (
	"time"

	userDB "share-ledger-api/internal/infrastructure/db/postgres/user"
)

type (
	Entry struct {
		ID     uint64
		UserID *userDB.ID

		Action  string
		Details *string

		CreatedAt time.Time
	}
	Entries []*Entry
)
