package genre

import "context"

type Service interface {
	ListGenres(ctx context.Context, search string) ([]Genre, error)
}

type Repository interface {
	AllGenres(ctx context.Context, search string) ([]Genre, error)
	// GetOrCreateByName returns the genre with the exact name, creating
	// it first when absent. Concurrent creates are arbitrated by the
	// storage uniqueness constraint.
	GetOrCreateByName(ctx context.Context, name string) (Genre, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListGenres(ctx context.Context, search string) ([]Genre, error) {
	return uc.r.AllGenres(ctx, search)
}
