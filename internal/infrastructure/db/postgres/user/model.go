package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   uint64
	User struct {
		ID           uint64
		UUID         uuid.UUID
		Email        string
		Username     string
		PasswordHash *string
		Role         string

		CreatedAt time.Time

		DeletedAt *time.Time
	}
	Users []*User
)
