package share

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"share-ledger-api/internal/domain/share"
	"share-ledger-api/internal/domain/user"
)

// DB is the subset of pgxpool.Pool the repository needs. Narrowed to an
// interface so repository tests can run against pgxmock.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db DB
}

func NewRepository(db DB) share.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateShare(ctx context.Context, req *share.Record) (*share.Record, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rec := new(Record)

	var msg *string
	if req.Message != "" {
		msg = &req.Message
	}

	err = tx.QueryRow(
		ctx,
		InsertShare,
		req.FileID.String(), req.OwnerID, req.RecipientID, req.BytesTransferred, msg,
	).Scan(
		&rec.ID,
		&rec.UUID,
		&rec.FileID,
		&rec.OwnerID,
		&rec.RecipientID,

		&rec.BytesTransferred,
		&rec.Message,

		&rec.SharedAt,
	)
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx, UpsertUsage, req.OwnerID, req.RecipientID, req.BytesTransferred); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return fromDBModel(rec), nil
}

func (r *Repository) FetchUsage(ctx context.Context, ownerID, recipientID user.ID) (*share.UsageCounter, error) {
	uc := new(UsageCounter)
	err := r.db.QueryRow(ctx, SelectUsage, ownerID, recipientID).Scan(
		&uc.OwnerID,
		&uc.RecipientID,

		&uc.TotalBytes,

		&uc.CreatedAt,
		&uc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return usageFromDBModel(uc), nil
}

func (r *Repository) HasShareFor(ctx context.Context, fileUUID uuid.UUID, recipientID user.ID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, SelectShareExists, fileUUID.String(), recipientID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) FetchRecentShares(ctx context.Context, limit int) (share.Records, error) {
	rows, err := r.db.Query(ctx, SelectRecentShares, limit)
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
			&rec.FileID,
			&rec.OwnerID,
			&rec.RecipientID,

			&rec.BytesTransferred,
			&rec.Message,

			&rec.SharedAt,
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
