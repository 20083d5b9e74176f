package review

import (
	"strings"
	"time"

	"cinehub/errs"
)

var (
	ErrNotFound      = errs.Errorf(errs.ENOTFOUND, "review not found")
	ErrNotOwner      = errs.Errorf(errs.EFORBIDDEN, "review belongs to another user")
	ErrInvalidRating = errs.Invalidf(
		map[string][]string{"rating": {"must be between 1 and 10"}},
		"review: rating out of range",
	)
	ErrInvalidText = errs.Invalidf(
		map[string][]string{"text": {"required"}},
		"review: text is required",
	)
	ErrInvalidMovie = errs.Invalidf(
		map[string][]string{"movie": {"required"}},
		"review: movie is required",
	)
	// A second review for the same (user, movie) pair is rejected by the
	// storage uniqueness constraint; it never overwrites the first.
	ErrAlreadyReviewed = errs.Invalidf(
		map[string][]string{"movie": {"already reviewed by this user"}},
		"review: user already reviewed this movie",
	)
)

type Review struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"user"`
	MovieID   int64     `json:"movie"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r Review) Validate() error {
	if r.MovieID <= 0 {
		return ErrInvalidMovie
	}
	if r.Rating < 1 || r.Rating > 10 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(r.Text) == "" {
		return ErrInvalidText
	}
	return nil
}
