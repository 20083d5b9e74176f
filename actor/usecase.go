package actor

import "context"

type Service interface {
	ListActors(ctx context.Context, search string) ([]Actor, error)
}

type Repository interface {
	AllActors(ctx context.Context, search string) ([]Actor, error)
	// GetOrCreateByName returns the actor with the exact name, creating
	// it first when absent. Concurrent creates are arbitrated by the
	// storage uniqueness constraint.
	GetOrCreateByName(ctx context.Context, name string) (Actor, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListActors(ctx context.Context, search string) ([]Actor, error) {
	return uc.r.AllActors(ctx, search)
}
