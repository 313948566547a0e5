package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	Record struct {
		UUID        uuid.UUID `json:"uuid"`
		FileName    string    `json:"file_name"`
		ContentType string    `json:"content_type"`
		SizeBytes   int64     `json:"size_bytes"`
		RemoteURL   string    `json:"remote_url,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}
	Records      []Record
	ResponseData struct {
		Data Records `json:"data"`
	}
)
