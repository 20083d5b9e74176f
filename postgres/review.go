package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"cinehub/review"
)

// ReviewModel represents the database model for reviews
type ReviewModel struct {
	ID        int64     `gorm:"primaryKey"`
	UUID      string    `gorm:"type:uuid;default:gen_random_uuid();not null;uniqueIndex"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_reviews_user_movie"`
	MovieID   int64     `gorm:"not null;uniqueIndex:idx_reviews_user_movie"`
	Rating    int       `gorm:"not null"`
	Text      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// reviewRow is a ReviewModel joined with the author's name.
type reviewRow struct {
	ReviewModel
	Username string
}

// ReviewRepository implements review.Repository interface
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// AllReviews lists reviews newest first. A zero movieID lists every
// review, a positive one restricts the list to that movie.
func (r *ReviewRepository) AllReviews(ctx context.Context, movieID int64) ([]review.Review, error) {
	var rows []reviewRow
	query := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*", "users.name AS username").
		Joins("JOIN users ON users.id = reviews.user_id").
		Order("reviews.created_at DESC")
	if movieID > 0 {
		query = query.Where("reviews.movie_id = ?", movieID)
	}
	err := query.Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]review.Review, len(rows))
	for i, row := range rows {
		reviews[i] = toDomainReview(row)
	}
	return reviews, nil
}

// GetByID implements [review.Repository].
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (review.Review, error) {
	var row reviewRow
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*", "users.name AS username").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return review.Review{}, review.ErrNotFound
		}
		return review.Review{}, err
	}
	return toDomainReview(row), nil
}

// CreateReview implements [review.Repository]. The (user_id, movie_id)
// uniqueness constraint rejects a second review for the same movie.
func (r *ReviewRepository) CreateReview(ctx context.Context, rev review.Review) (review.Review, error) {
	model := ReviewModel{
		UUID:    uuid.NewString(),
		UserID:  rev.UserID,
		MovieID: rev.MovieID,
		Rating:  rev.Rating,
		Text:    rev.Text,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err, "user_movie") {
			return review.Review{}, review.ErrAlreadyReviewed
		}
		if isForeignKeyViolation(err, "movie") {
			return review.Review{}, review.ErrInvalidMovie
		}
		return review.Review{}, err
	}
	return r.GetByID(ctx, model.ID)
}

// UpdateReview implements [review.Repository]. Only rating and text are
// mutable.
func (r *ReviewRepository) UpdateReview(ctx context.Context, rev review.Review) (review.Review, error) {
	result := r.db.WithContext(ctx).Model(&ReviewModel{}).Where("id = ?", rev.ID).Updates(map[string]interface{}{
		"rating":     rev.Rating,
		"text":       rev.Text,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return review.Review{}, result.Error
	}
	if result.RowsAffected == 0 {
		return review.Review{}, review.ErrNotFound
	}
	return r.GetByID(ctx, rev.ID)
}

// DeleteReview implements [review.Repository].
func (r *ReviewRepository) DeleteReview(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ReviewModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return review.ErrNotFound
	}
	return nil
}

func toDomainReview(row reviewRow) review.Review {
	return review.Review{
		ID:        row.ID,
		UUID:      row.UUID,
		UserID:    row.UserID,
		Username:  row.Username,
		MovieID:   row.MovieID,
		Rating:    row.Rating,
		Text:      row.Text,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func isForeignKeyViolation(err error, constraintPart string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" &&
			strings.Contains(strings.ToLower(pqErr.Constraint), constraintPart)
	}
	return false
}
