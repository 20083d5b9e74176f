package user

import (
	"context"
	"strings"
)

type Service interface {
	AddUser(ctx context.Context, u User) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type Repository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, plain string) error
}

type Usecase struct {
	r      Repository
	hasher PasswordHasher
}

func NewUsecase(r Repository, h PasswordHasher) *Usecase {
	return &Usecase{
		r:      r,
		hasher: h,
	}
}

func (uc *Usecase) AddUser(ctx context.Context, u User) (User, error) {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}

	hashed, err := uc.hasher.Hash(u.Password)
	if err != nil {
		return User{}, err
	}
	u.Password = ""
	u.PasswordHash = hashed
	return uc.r.CreateUser(ctx, u)
}

func (uc *Usecase) GetUserByID(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrUserIDRequired
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) GetUserByEmail(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, ErrInvalidEmail
	}
	return uc.r.GetByEmail(ctx, email)
}
