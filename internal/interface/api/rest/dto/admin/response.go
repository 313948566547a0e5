package admin

import (
	"time"

	"github.com/google/uuid"

	"share-ledger-api/internal/domain/audit"
	"share-ledger-api/internal/domain/share"
)

type (
	ActivityEntry struct {
		UserID    uint64    `json:"user_id"`
		Action    string    `json:"action"`
		Details   string    `json:"details"`
		CreatedAt time.Time `json:"created_at"`
	}
	ActivityEntries []ActivityEntry
	ActivityData    struct {
		Data ActivityEntries `json:"data"`
	}

	ShareEntry struct {
		UUID             uuid.UUID `json:"uuid"`
		FileID           uuid.UUID `json:"file_id"`
		OwnerID          uint64    `json:"owner_id"`
		RecipientID      uint64    `json:"recipient_id"`
		BytesTransferred int64     `json:"bytes_transferred"`
		SharedAt         time.Time `json:"shared_at"`
	}
	ShareEntries []ShareEntry
	ShareData    struct {
		Data ShareEntries `json:"data"`
	}
)

func ToActivityEntries(esDomain audit.Entries) ActivityEntries {
	es := make(ActivityEntries, len(esDomain))
	for idx, e := range esDomain {
		es[idx] = ActivityEntry{
			UserID:    uint64(e.UserID),
			Action:    e.Action,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		}
	}

	return es
}

func ToShareEntries(rsDomain share.Records) ShareEntries {
	rs := make(ShareEntries, len(rsDomain))
	for idx, r := range rsDomain {
		rs[idx] = ShareEntry{
			UUID:             r.UUID,
			FileID:           r.FileID,
			OwnerID:          uint64(r.OwnerID),
			RecipientID:      uint64(r.RecipientID),
			BytesTransferred: r.BytesTransferred,
			SharedAt:         r.SharedAt,
		}
	}

	return rs
}
