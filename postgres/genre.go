package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinehub/genre"
	"cinehub/pkg/slug"
)

// GenreModel represents the database model for genres
type GenreModel struct {
	ID          int64     `gorm:"primaryKey"`
	UUID        string    `gorm:"type:uuid;default:gen_random_uuid();not null;uniqueIndex"`
	Name        string    `gorm:"not null;unique"`
	Slug        string    `gorm:"not null;unique"`
	Description string    `gorm:"not null;default:''"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (GenreModel) TableName() string {
	return "genres"
}

// GenreRepository implements genre.Repository interface
type GenreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new genre repository
func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) AllGenres(ctx context.Context, search string) ([]genre.Genre, error) {
	q := r.db.WithContext(ctx).Order("name")
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	var models []GenreModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	genres := make([]genre.Genre, len(models))
	for i, model := range models {
		genres[i] = toDomainGenre(model)
	}
	return genres, nil
}

// GetOrCreateByName implements [genre.Repository]. A concurrent create
// losing the race on the name constraint falls back to a refetch.
func (r *GenreRepository) GetOrCreateByName(ctx context.Context, name string) (genre.Genre, error) {
	existing, err := r.getByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return genre.Genre{}, err
	}

	model := GenreModel{
		UUID: uuid.NewString(),
		Name: name,
		Slug: slug.Make(name),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err, "name") || isUniqueViolation(err, "slug") {
			return r.getByName(ctx, name)
		}
		return genre.Genre{}, err
	}
	return toDomainGenre(model), nil
}

func (r *GenreRepository) getByName(ctx context.Context, name string) (genre.Genre, error) {
	var model GenreModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return genre.Genre{}, err
	}
	return toDomainGenre(model), nil
}

func toDomainGenre(model GenreModel) genre.Genre {
	return genre.Genre{
		ID:          model.ID,
		UUID:        model.UUID,
		Name:        model.Name,
		Slug:        model.Slug,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
	}
}
