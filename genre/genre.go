package genre

import (
	"strings"
	"time"

	"cinehub/errs"
)

var (
	ErrNotFound    = errs.Errorf(errs.ENOTFOUND, "genre not found")
	ErrInvalidName = errs.Errorf(errs.EINVALID, "genre: name is required")
)

type Genre struct {
	ID          int64     `json:"id"`
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (g Genre) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
