package share

import (
	domain "share-ledger-api/internal/domain/share"
	"share-ledger-api/internal/domain/user"
)

func fromDBModel(model *Record) *domain.Record {
	var ownerID, recipientID user.ID
	if model.OwnerID != nil {
		ownerID = user.ID(*model.OwnerID)
	}
	if model.RecipientID != nil {
		recipientID = user.ID(*model.RecipientID)
	}

	var msg string
	if model.Message != nil {
		msg = *model.Message
	}

	return &domain.Record{
		UUID:        model.UUID,
		FileID:      model.FileID,
		OwnerID:     ownerID,
		RecipientID: recipientID,

		BytesTransferred: model.BytesTransferred,
		Message:          msg,

		SharedAt: model.SharedAt,
	}
}

func fromDBModels(models *Records) domain.Records {
	rs := make(domain.Records, len(*models))
	for idx, r := range *models {
		rs[idx] = fromDBModel(r)
	}

	return rs
}

func usageFromDBModel(model *UsageCounter) *domain.UsageCounter {
	return &domain.UsageCounter{
		OwnerID:     user.ID(model.OwnerID),
		RecipientID: user.ID(model.RecipientID),

		TotalBytes: model.TotalBytes,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
