package file

import (
	"time"

	"github.com/google/uuid"

	"share-ledger-api/internal/domain/user"
)

// Location is where the stored bytes live. The local path is always
// populated; a mirrored file additionally carries the remote copy's URL.
// Serving decides stream-vs-redirect by type, never by sniffing the path.
type Location interface {
	LocalPath() string
}

type (
	// Local is a file that exists only in the local content store.
	Local struct {
		Path string
	}
	// Mirrored is a file with a durable local copy plus a remote mirror.
	Mirrored struct {
		Path string
		URL  string
	}
)

func (l Local) LocalPath() string    { return l.Path }
func (m Mirrored) LocalPath() string { return m.Path }

type (
	// Record is the persisted metadata for one stored upload. It is created
	// once per successful upload commit and never mutated afterwards except
	// for the soft-delete mark.
	Record struct {
		UUID    uuid.UUID
		OwnerID user.ID

		FileName    string
		ContentType string
		SizeBytes   int64
		Location    Location

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	Records []*Record
)
