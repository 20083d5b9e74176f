package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinehub/actor"
	"cinehub/pkg/slug"
)

// ActorModel represents the database model for actors
type ActorModel struct {
	ID        int64     `gorm:"primaryKey"`
	UUID      string    `gorm:"type:uuid;default:gen_random_uuid();not null;uniqueIndex"`
	Name      string    `gorm:"not null;unique"`
	Slug      string    `gorm:"not null;unique"`
	Bio       string    `gorm:"not null;default:''"`
	BirthDate *time.Time
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ActorModel) TableName() string {
	return "actors"
}

// ActorRepository implements actor.Repository interface
type ActorRepository struct {
	db *gorm.DB
}

// NewActorRepository creates a new actor repository
func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

func (r *ActorRepository) AllActors(ctx context.Context, search string) ([]actor.Actor, error) {
	q := r.db.WithContext(ctx).Order("name")
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	var models []ActorModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	actors := make([]actor.Actor, len(models))
	for i, model := range models {
		actors[i] = toDomainActor(model)
	}
	return actors, nil
}

// GetOrCreateByName implements [actor.Repository]. A concurrent create
// losing the race on the name constraint falls back to a refetch.
func (r *ActorRepository) GetOrCreateByName(ctx context.Context, name string) (actor.Actor, error) {
	existing, err := r.getByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return actor.Actor{}, err
	}

	model := ActorModel{
		UUID: uuid.NewString(),
		Name: name,
		Slug: slug.Make(name),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err, "name") || isUniqueViolation(err, "slug") {
			return r.getByName(ctx, name)
		}
		return actor.Actor{}, err
	}
	return toDomainActor(model), nil
}

func (r *ActorRepository) getByName(ctx context.Context, name string) (actor.Actor, error) {
	var model ActorModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return actor.Actor{}, err
	}
	return toDomainActor(model), nil
}

func toDomainActor(model ActorModel) actor.Actor {
	return actor.Actor{
		ID:        model.ID,
		UUID:      model.UUID,
		Name:      model.Name,
		Slug:      model.Slug,
		Bio:       model.Bio,
		BirthDate: model.BirthDate,
		CreatedAt: model.CreatedAt,
	}
}
