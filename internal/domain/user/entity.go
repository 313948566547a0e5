package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type (
	ID   uint64
	UUID = uuid.UUID
	User struct {
		UUID         UUID
		Email        string
		Username     string
		PasswordHash *string
		Role         string

		CreatedAt time.Time

		DeletedAt *time.Time
	}
	Users []*User
)

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
