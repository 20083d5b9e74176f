package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinehub/user"
)

// UserModel represents the database model for users
type UserModel struct {
	ID           int64     `gorm:"primaryKey"`
	UUID         string    `gorm:"type:uuid;default:gen_random_uuid();not null;uniqueIndex"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null;unique"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:user"`
	Status       string    `gorm:"not null;default:active"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserRepository implements user.Repository interface
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user in the database
func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	model := toModelUser(u)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err, "email") {
			return user.User{}, user.ErrEmailAlreadyExists
		}
		return user.User{}, err
	}
	return toDomainUser(model), nil
}

// GetByID fetches a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return toDomainUser(model), nil
}

// GetByEmail implements [auth.UserRepository].
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return toDomainUser(model), nil
}

func toDomainUser(model UserModel) user.User {
	return user.User{
		ID:           model.ID,
		UUID:         model.UUID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         user.Role(model.Role),
		Status:       user.Status(model.Status),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func toModelUser(u user.User) UserModel {
	return UserModel{
		ID:           u.ID,
		UUID:         uuid.NewString(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Status:       string(u.Status),
	}
}
