package share

import (
	"time"

	"github.com/google/uuid"

	"share-ledger-api/internal/domain/share"
)

type (
	Request struct {
		FileID         string `json:"file_id"`
		RecipientEmail string `json:"recipient_email"`
		Message        string `json:"message,omitempty"`
	}

	Response struct {
		UUID             uuid.UUID `json:"uuid"`
		FileID           uuid.UUID `json:"file_id"`
		BytesTransferred int64     `json:"bytes_transferred"`
		Message          string    `json:"message,omitempty"`
		SharedAt         time.Time `json:"shared_at"`
	}
	Responses []Response

	UsageResponse struct {
		OwnerID     uuid.UUID `json:"owner_id"`
		RecipientID uuid.UUID `json:"recipient_id"`
		TotalBytes  int64     `json:"total_bytes"`
		UpdatedAt   time.Time `json:"updated_at"`
	}
)

func ToResponse(sDomain share.Record) Response {
	return Response{
		UUID:             sDomain.UUID,
		FileID:           sDomain.FileID,
		BytesTransferred: sDomain.BytesTransferred,
		Message:          sDomain.Message,
		SharedAt:         sDomain.SharedAt,
	}
}

// ToUsageResponse maps the counter onto the pair's external ids; the
// counter row itself only knows internal ids.
func ToUsageResponse(ownerUUID, recipientUUID uuid.UUID, uc share.UsageCounter) UsageResponse {
	return UsageResponse{
		OwnerID:     ownerUUID,
		RecipientID: recipientUUID,
		TotalBytes:  uc.TotalBytes,
		UpdatedAt:   uc.UpdatedAt,
	}
}

func ToResponses(rsDomain share.Records) Responses {
	rs := make(Responses, len(rsDomain))
	for idx, r := range rsDomain {
		rs[idx] = ToResponse(*r)
	}

	return rs
}
