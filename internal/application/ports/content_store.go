package ports

import (
	"share-ledger-api/internal/domain/user"
)

// ContentStore is the durable local byte store. Put must not reuse names;
// DeleteBestEffort must never report failure to its caller.
type ContentStore interface {
	Put(ownerID user.ID, suffixHint string, data []byte) (string, error)
	DeleteBestEffort(path string)
}
