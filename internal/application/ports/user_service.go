package ports

import (
	"context"

	"share-ledger-api/internal/domain/user"
)

type UserService interface {
	Register(ctx context.Context, email, username, password string) (*user.User, error)
	FindUserByID(ctx context.Context, uuid user.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindUsers(ctx context.Context, page int) (user.Users, error)
	RecordActivity(ctx context.Context, uuid user.UUID, action, details string)
}
