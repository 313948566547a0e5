package validator

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"share-ledger-api/internal/interface/api/rest/dto/auth"
	"share-ledger-api/internal/interface/api/rest/dto/share"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe
	maxMessageLen  = 500
)

func ValidatePage(page string) (int, error) {
	p := 1
	if page != "" {
		p, err := strconv.Atoi(page)
		if err != nil || p < 1 {
			return p, errors.New("invalid page")
		}
		return p, nil
	}

	return p, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	email := strings.ToLower(strings.TrimSpace(r.Email))

	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(r.Password); l < minPasswordLen || l > maxPasswordLen {
		errs["password"] = "password length must be 8-72 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := ValidateLogin(auth.LoginRequest{Email: r.Email, Password: r.Password})
	if errs == nil {
		errs = make(map[string]string)
	}

	username := strings.TrimSpace(r.Username)
	if username == "" {
		errs["username"] = "username is required"
	} else if l := utf8.RuneCountInString(username); l < 2 || l > 64 {
		errs["username"] = "username length must be 2-64 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateShare(r share.Request) map[string]string {
	errs := make(map[string]string)

	if ok, _ := IsUUID(r.FileID); !ok {
		errs["file_id"] = "file_id must be a valid UUID"
	}

	email := strings.ToLower(strings.TrimSpace(r.RecipientEmail))
	if email == "" {
		errs["recipient_email"] = "recipient_email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["recipient_email"] = "invalid email format"
	}

	if utf8.RuneCountInString(r.Message) > maxMessageLen {
		errs["message"] = "message too long"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
