package review

import "context"

type Service interface {
	ListReviews(ctx context.Context, movieID int64) ([]Review, error)
	AddReview(ctx context.Context, r Review) (Review, error)
	UpdateReview(ctx context.Context, id, userID int64, rating int, text string) (Review, error)
	DeleteReview(ctx context.Context, id, userID int64) error
}

type Repository interface {
	AllReviews(ctx context.Context, movieID int64) ([]Review, error)
	GetByID(ctx context.Context, id int64) (Review, error)
	CreateReview(ctx context.Context, r Review) (Review, error)
	UpdateReview(ctx context.Context, r Review) (Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// ListReviews returns reviews for one movie, or all reviews when
// movieID is zero.
func (uc *Usecase) ListReviews(ctx context.Context, movieID int64) ([]Review, error) {
	return uc.r.AllReviews(ctx, movieID)
}

func (uc *Usecase) AddReview(ctx context.Context, r Review) (Review, error) {
	if err := r.Validate(); err != nil {
		return Review{}, err
	}
	return uc.r.CreateReview(ctx, r)
}

// UpdateReview applies new rating and text to an existing review. Only
// the owning user may modify it.
func (uc *Usecase) UpdateReview(ctx context.Context, id, userID int64, rating int, text string) (Review, error) {
	existing, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return Review{}, err
	}
	if existing.UserID != userID {
		return Review{}, ErrNotOwner
	}

	existing.Rating = rating
	existing.Text = text
	if err := existing.Validate(); err != nil {
		return Review{}, err
	}
	return uc.r.UpdateReview(ctx, existing)
}

func (uc *Usecase) DeleteReview(ctx context.Context, id, userID int64) error {
	existing, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotOwner
	}
	return uc.r.DeleteReview(ctx, id)
}
