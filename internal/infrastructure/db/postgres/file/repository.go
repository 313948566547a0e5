package file

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"share-ledger-api/internal/domain/file"
	"share-ledger-api/internal/domain/user"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) file.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchFileByID(ctx context.Context, fileUUID uuid.UUID) (*file.Record, error) {
	rec := new(Record)
	err := r.db.QueryRow(ctx, SelectFileByID, fileUUID.String()).Scan(
		&rec.ID,
		&rec.UUID,
		&rec.OwnerID,

		&rec.FileName,
		&rec.ContentType,
		&rec.SizeBytes,
		&rec.StoredPath,
		&rec.RemoteURL,

		&rec.CreatedAt,
		&rec.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(rec), err
}

func (r *Repository) FetchOwnerFiles(ctx context.Context, ownerID user.ID, page int) (file.Records, error) {
	rows, err := r.db.Query(ctx, SelectOwnerFiles, ownerID, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs Records
	for rows.Next() {
		rec := new(Record)

		if err = rows.Scan(
			&rec.ID,
			&rec.UUID,
			&rec.OwnerID,

			&rec.FileName,
			&rec.ContentType,
			&rec.SizeBytes,
			&rec.StoredPath,
			&rec.RemoteURL,

			&rec.CreatedAt,
			&rec.DeletedAt,
		); err != nil {
			return nil, err
		}

		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&recs), nil
}

func (r *Repository) CreateFile(ctx context.Context, req *file.Record) (*file.Record, error) {
	rec := new(Record)

	storedPath, remoteURL := toColumns(req)
	err := r.db.QueryRow(
		ctx,
		InsertFile,
		req.OwnerID, req.FileName, req.ContentType, req.SizeBytes, storedPath, remoteURL,
	).Scan(
		&rec.ID,
		&rec.UUID,
		&rec.OwnerID,

		&rec.FileName,
		&rec.ContentType,
		&rec.SizeBytes,
		&rec.StoredPath,
		&rec.RemoteURL,

		&rec.CreatedAt,
		&rec.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(rec), err
}

func (r *Repository) SoftDeleteFile(ctx context.Context, fileUUID uuid.UUID) error {
	_, err := r.db.Exec(ctx, SoftDeleteFile, fileUUID.String())
	return err
}
