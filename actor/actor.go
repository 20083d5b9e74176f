package actor

import (
	"strings"
	"time"

	"cinehub/errs"
)

var (
	ErrNotFound    = errs.Errorf(errs.ENOTFOUND, "actor not found")
	ErrInvalidName = errs.Errorf(errs.EINVALID, "actor: name is required")
)

type Actor struct {
	ID        int64      `json:"id"`
	UUID      string     `json:"uuid"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Bio       string     `json:"bio,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (a Actor) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
