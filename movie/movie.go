package movie

import (
	"time"

	"cinehub/actor"
	"cinehub/errs"
	"cinehub/genre"
	"cinehub/review"
)

var (
	ErrNotFound     = errs.Errorf(errs.ENOTFOUND, "movie not found")
	ErrInvalidQuery = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrSlugTaken    = errs.Invalidf(
		map[string][]string{"slug": {"already in use"}},
		"movie: slug already in use",
	)
)

// PageSize is the fixed page size for movie listings.
const PageSize = 12

type Movie struct {
	ID          int64          `json:"id"`
	UUID        string         `json:"uuid"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	ReleaseYear int            `json:"release_year"`
	PosterURL   string         `json:"poster,omitempty"`
	Genres      []genre.Genre  `json:"genres"`
	Actors      []actor.Actor  `json:"actors"`
	Rating      review.Summary `json:"rating"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (m Movie) Validate() error {
	fields := map[string][]string{}
	if m.Title == "" {
		fields["title"] = append(fields["title"], "required")
	}
	if m.Description == "" {
		fields["description"] = append(fields["description"], "required")
	}
	if m.ReleaseYear < 1888 || m.ReleaseYear > time.Now().Year()+5 {
		fields["release_year"] = append(fields["release_year"], "out of range")
	}
	if len(fields) > 0 {
		return errs.Invalidf(fields, "movie: invalid fields")
	}
	return nil
}

// ListParams narrows and orders a movie listing. Ordering accepts the
// safelisted column names, prefixed with "-" for descending.
type ListParams struct {
	Page        int
	GenreID     int64
	ReleaseYear int
	MinRating   *float64
	MaxRating   *float64
	Search      string
	Ordering    string
}

var OrderingSafelist = []string{
	"title", "-title",
	"release_year", "-release_year",
	"created_at", "-created_at",
}

const DefaultOrdering = "-created_at"

// ValidOrdering reports whether ordering is empty or safelisted.
func ValidOrdering(ordering string) bool {
	if ordering == "" {
		return true
	}
	for _, safe := range OrderingSafelist {
		if ordering == safe {
			return true
		}
	}
	return false
}

type ListResult struct {
	Movies   []Movie
	Page     int
	PageSize int
	Total    int64
}

// UpdateParams carries a partial update; nil members leave the current
// value untouched. The slug is never recomputed from a new title.
type UpdateParams struct {
	Title       *string
	Description *string
	ReleaseYear *int
	PosterURL   *string
	GenreIDs    *[]int64
	ActorIDs    *[]int64
}
