package movie

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"cinehub/actor"
	"cinehub/errs"
	"cinehub/genre"
	"cinehub/pkg/slug"
)

type Service interface {
	ListMovies(ctx context.Context, params ListParams) (ListResult, error)
	GetMovie(ctx context.Context, identifier string) (Movie, error)
	SearchMovies(ctx context.Context, query string) ([]Movie, error)
	AddMovie(ctx context.Context, m Movie, genreIDs, actorIDs []int64) (Movie, error)
	UpdateMovie(ctx context.Context, identifier string, params UpdateParams) (Movie, error)
	DeleteMovie(ctx context.Context, identifier string) error
	ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error)
}

type Repository interface {
	ListMovies(ctx context.Context, params ListParams) ([]Movie, int64, error)
	GetBySlug(ctx context.Context, slug string) (Movie, error)
	GetByID(ctx context.Context, id int64) (Movie, error)
	SearchMovies(ctx context.Context, query string) ([]Movie, error)
	CreateMovie(ctx context.Context, m Movie, genreIDs, actorIDs []int64) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, params UpdateParams) (Movie, error)
	// DeleteMovie removes the movie and, through the storage-level
	// cascade, all of its reviews.
	DeleteMovie(ctx context.Context, id int64) error
}

type Usecase struct {
	r      Repository
	genres genre.Repository
	actors actor.Repository
}

func NewUsecase(r Repository, genres genre.Repository, actors actor.Repository) *Usecase {
	return &Usecase{r: r, genres: genres, actors: actors}
}

func (uc *Usecase) ListMovies(ctx context.Context, params ListParams) (ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Ordering == "" {
		params.Ordering = DefaultOrdering
	}
	if !ValidOrdering(params.Ordering) {
		return ListResult{}, errs.Invalidf(
			map[string][]string{"ordering": {"must be one of " + strings.Join(OrderingSafelist, ", ")}},
			"movie: invalid ordering",
		)
	}

	movies, total, err := uc.r.ListMovies(ctx, params)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Movies: movies, Page: params.Page, PageSize: PageSize, Total: total}, nil
}

// GetMovie resolves a path identifier that may be a slug or a numeric
// id. The slug lookup always runs first: a purely numeric slug shadows
// a colliding id, by contract.
func (uc *Usecase) GetMovie(ctx context.Context, identifier string) (Movie, error) {
	m, err := uc.r.GetBySlug(ctx, identifier)
	if err == nil {
		return m, nil
	}
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		return Movie{}, err
	}

	id, parseErr := strconv.ParseInt(identifier, 10, 64)
	if parseErr != nil {
		return Movie{}, ErrNotFound
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) SearchMovies(ctx context.Context, query string) ([]Movie, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidQuery
	}
	return uc.r.SearchMovies(ctx, query)
}

func (uc *Usecase) AddMovie(ctx context.Context, m Movie, genreIDs, actorIDs []int64) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	if m.Slug == "" {
		m.Slug = slug.Make(m.Title)
	}
	return uc.r.CreateMovie(ctx, m, genreIDs, actorIDs)
}

func (uc *Usecase) UpdateMovie(ctx context.Context, identifier string, params UpdateParams) (Movie, error) {
	existing, err := uc.GetMovie(ctx, identifier)
	if err != nil {
		return Movie{}, err
	}

	fields := map[string][]string{}
	if params.Title != nil && *params.Title == "" {
		fields["title"] = append(fields["title"], "required")
	}
	if params.Description != nil && *params.Description == "" {
		fields["description"] = append(fields["description"], "required")
	}
	if params.ReleaseYear != nil && (*params.ReleaseYear < 1888 || *params.ReleaseYear > time.Now().Year()+5) {
		fields["release_year"] = append(fields["release_year"], "out of range")
	}
	if len(fields) > 0 {
		return Movie{}, errs.Invalidf(fields, "movie: invalid fields")
	}

	return uc.r.UpdateMovie(ctx, existing.ID, params)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, identifier string) error {
	existing, err := uc.GetMovie(ctx, identifier)
	if err != nil {
		return err
	}
	return uc.r.DeleteMovie(ctx, existing.ID)
}
