package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"share-ledger-api/internal/domain/audit"
	"share-ledger-api/internal/domain/user"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) audit.Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, userID user.ID, action, details string) error {
	_, err := r.db.Exec(ctx, InsertEntry, userID, action, details)
	return err
}

func (r *Repository) FetchRecent(ctx context.Context, limit int) (audit.Entries, error) {
	rows, err := r.db.Query(ctx, SelectRecentEntries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var es Entries
	for rows.Next() {
		e := new(Entry)

		if err = rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Action,
			&e.Details,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		es = append(es, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&es), nil
}
