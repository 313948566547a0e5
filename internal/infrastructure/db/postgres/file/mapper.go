package file

import (
	domain "share-ledger-api/internal/domain/file"
	"share-ledger-api/internal/domain/user"
)

func fromDBModel(model *Record) *domain.Record {
	var loc domain.Location = domain.Local{Path: model.StoredPath}
	if model.RemoteURL != nil && *model.RemoteURL != "" {
		loc = domain.Mirrored{Path: model.StoredPath, URL: *model.RemoteURL}
	}

	var ownerID user.ID
	if model.OwnerID != nil {
		ownerID = user.ID(*model.OwnerID)
	}

	return &domain.Record{
		UUID:    model.UUID,
		OwnerID: ownerID,

		FileName:    model.FileName,
		ContentType: model.ContentType,
		SizeBytes:   model.SizeBytes,
		Location:    loc,

		CreatedAt: model.CreatedAt,
		DeletedAt: model.DeletedAt,
	}
}

func fromDBModels(models *Records) domain.Records {
	rs := make(domain.Records, len(*models))
	for idx, r := range *models {
		rs[idx] = fromDBModel(r)
	}

	return rs
}

func toColumns(req *domain.Record) (storedPath string, remoteURL *string) {
	switch loc := req.Location.(type) {
	case domain.Mirrored:
		return loc.Path, &loc.URL
	case domain.Local:
		return loc.Path, nil
	default:
		return "", nil
	}
}
