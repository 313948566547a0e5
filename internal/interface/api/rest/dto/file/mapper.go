package file

import (
	"share-ledger-api/internal/domain/file"
)

func ToResponseRecord(rDomain file.Record) Record {
	var remoteURL string
	if m, ok := rDomain.Location.(file.Mirrored); ok {
		remoteURL = m.URL
	}

	return Record{
		UUID:        rDomain.UUID,
		FileName:    rDomain.FileName,
		ContentType: rDomain.ContentType,
		SizeBytes:   rDomain.SizeBytes,
		RemoteURL:   remoteURL,
		CreatedAt:   rDomain.CreatedAt,
	}
}

func ToResponseRecords(rsDomain file.Records) Records {
	rs := make(Records, len(rsDomain))
	for idx, r := range rsDomain {
		rs[idx] = ToResponseRecord(*r)
	}

	return rs
}
