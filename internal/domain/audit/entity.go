package audit

import (
	"time"

	"share-ledger-api/internal/domain/user"
)

// Actions recorded by the pipeline and the sharing ledger.
const (
	ActionRegister       = "register"
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionUpload         = "upload"
	ActionUploadBlocked  = "upload_blocked"
	ActionNSFWCheckError = "nsfw_check_error"
	ActionMirrorError    = "mirror_error"
	ActionShare          = "share"
)

type (
	Entry struct {
		ID      uint64
		UserID  user.ID
		Action  string
		Details string

		CreatedAt time.Time
	}
	Entries []*Entry
)
