package audit

import (
	domain "share-ledger-api/internal/domain/audit"
	"share-ledger-api/internal/domain/user"
)

func fromDBModel(model *Entry) *domain.Entry {
	var userID user.ID
	if model.UserID != nil {
		userID = user.ID(*model.UserID)
	}

	var details string
	if model.Details != nil {
		details = *model.Details
	}

	return &domain.Entry{
		ID:      model.ID,
		UserID:  userID,
		Action:  model.Action,
		Details: details,

		CreatedAt: model.CreatedAt,
	}
}

func fromDBModels(models *Entries) domain.Entries {
	es := make(domain.Entries, len(*models))
	for idx, e := range *models {
		es[idx] = fromDBModel(e)
	}

	return es
}
