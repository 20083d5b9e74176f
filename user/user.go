package user

import (
	"strings"
	"time"

	"cinehub/errs"
)

var (
	ErrUserNotFound       = errs.Errorf(errs.ENOTFOUND, "user not found")
	ErrEmailAlreadyExists = errs.Errorf(errs.ECONFLICT, "email already exists")
	ErrUserIDRequired     = errs.Errorf(errs.EINVALID, "user: id is required")
	ErrInvalidName        = errs.Errorf(errs.EINVALID, "user: invalid name")
	ErrInvalidEmail       = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrInvalidPassword    = errs.Errorf(errs.EINVALID, "user: invalid password")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type User struct {
	ID           int64
	UUID         string
	Name         string
	Email        string
	Password     string
	PasswordHash string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.Password) == "" {
		return ErrInvalidPassword
	}
	return nil
}

// IsAdmin reports whether the user holds the admin capability used by
// the privileged movie operations.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
