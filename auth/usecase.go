package auth

import (
	"context"
	"errors"
	"time"

	"cinehub/errs"
	"cinehub/user"
)

var (
	ErrInvalidCredentials  = errs.Errorf(errs.EUNAUTHORIZED, "invalid credentials")
	ErrAccountLocked       = errors.New("account temporarily locked")
	ErrInvalidRefreshToken = errs.Errorf(errs.EUNAUTHORIZED, "invalid refresh token")
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (TokenPair, error)
	Login(ctx context.Context, email, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	CreateUser(ctx context.Context, u user.User) (user.User, error)
}

type LoginAttempt struct {
	FailedCount int
	JailedUntil time.Time
}

type LoginAttemptRepository interface {
	Get(ctx context.Context, email string) (LoginAttempt, error)
	Save(ctx context.Context, email string, attempt LoginAttempt) error
	Reset(ctx context.Context, email string) error
}

type PasswordHasher interface {
	Compare(hashed, plain string) error
	Hash(password string) (string, error)
}

type TokenProvider interface {
	GenerateAccessToken(u user.User) (string, error)
	GenerateRefreshToken(u user.User) (string, error)
	ParseRefreshToken(refreshToken string) (user.User, error)
}

type Usecase struct {
	userRepo       UserRepository
	attemptsRepo   LoginAttemptRepository
	passwordHasher PasswordHasher
	tokenProvider  TokenProvider
	maxRetries     int
	jailDuration   time.Duration
	now            func() time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func NewUsecase(
	userRepo UserRepository,
	attemptsRepo LoginAttemptRepository,
	passwordHasher PasswordHasher,
	tokenProvider TokenProvider,
) *Usecase {
	return &Usecase{
		userRepo:       userRepo,
		attemptsRepo:   attemptsRepo,
		passwordHasher: passwordHasher,
		tokenProvider:  tokenProvider,
		maxRetries:     5,
		jailDuration:   15 * time.Minute,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Register creates a regular account and immediately issues a token
// pair. Admin accounts are bootstrapped out of band.
func (uc *Usecase) Register(ctx context.Context, name, email, password string) (TokenPair, error) {
	u := user.User{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     user.RoleUser,
		Status:   user.StatusActive,
	}
	if err := u.Validate(); err != nil {
		return TokenPair{}, err
	}

	hashed, err := uc.passwordHasher.Hash(password)
	if err != nil {
		return TokenPair{}, err
	}
	u.Password = ""
	u.PasswordHash = hashed

	created, err := uc.userRepo.CreateUser(ctx, u)
	if err != nil {
		return TokenPair{}, err
	}

	return uc.issueTokens(created)
}

func (uc *Usecase) Login(ctx context.Context, email, password string) (TokenPair, error) {
	attempt, err := uc.attemptsRepo.Get(ctx, email)
	if err != nil {
		return TokenPair{}, err
	}

	if !attempt.JailedUntil.IsZero() {
		if attempt.JailedUntil.After(uc.now()) {
			return TokenPair{}, ErrAccountLocked
		}
		attempt.JailedUntil = time.Time{}
		attempt.FailedCount = 0
		if err := uc.attemptsRepo.Save(ctx, email, attempt); err != nil {
			return TokenPair{}, err
		}
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err := uc.recordFailure(ctx, email, attempt); err != nil {
			return TokenPair{}, err
		}
		return TokenPair{}, ErrInvalidCredentials
	}

	if err := uc.passwordHasher.Compare(u.PasswordHash, password); err != nil {
		if err := uc.recordFailure(ctx, email, attempt); err != nil {
			return TokenPair{}, err
		}
		return TokenPair{}, ErrInvalidCredentials
	}

	if err := uc.attemptsRepo.Reset(ctx, email); err != nil {
		return TokenPair{}, err
	}

	return uc.issueTokens(u)
}

func (uc *Usecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	u, err := uc.tokenProvider.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	return uc.issueTokens(u)
}

func (uc *Usecase) issueTokens(u user.User) (TokenPair, error) {
	accessToken, err := uc.tokenProvider.GenerateAccessToken(u)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := uc.tokenProvider.GenerateRefreshToken(u)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *Usecase) recordFailure(ctx context.Context, email string, attempt LoginAttempt) error {
	attempt.FailedCount++
	if attempt.FailedCount >= uc.maxRetries {
		attempt.FailedCount = 0
		attempt.JailedUntil = uc.now().Add(uc.jailDuration)
	}
	return uc.attemptsRepo.Save(ctx, email, attempt)
}
