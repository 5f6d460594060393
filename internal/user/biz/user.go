package biz

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
)

// User represents the domain model
type User struct {
	ID                string
	Username          string
	Email             string
	Searches          int
	ResumeText        string
	AdditionalDetails string
	ProfileCompleted  bool
	JoinedWaitlist    bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UserRepo defines the interface for user data operations
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id, resumeText, additionalDetails string) error
	SearchCount(ctx context.Context, id string) (int, error)
	IncrementSearches(ctx context.Context, id string) error
}

// UserUseCase contains business logic for user operations
type UserUseCase struct {
	repo UserRepo
}

func NewUserUseCase(repo UserRepo) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// CreateUser registers a new account. Emails are stored lowercased and
// must be unique.
func (uc *UserUseCase) CreateUser(ctx context.Context, username, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := uc.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.New(apperrors.ErrAuthEmailExists)
	}

	user := &User{
		Username:  username,
		Email:     email,
		Searches:  0,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*User, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *UserUseCase) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return uc.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// CompleteProfile stores the extracted resume text and extra details and
// marks the profile completed.
func (uc *UserUseCase) CompleteProfile(ctx context.Context, id, resumeText, additionalDetails string) error {
	return uc.repo.UpdateProfile(ctx, id, resumeText, additionalDetails)
}

// SearchCount returns how many searches the user has consumed
func (uc *UserUseCase) SearchCount(ctx context.Context, id string) (int, error) {
	return uc.repo.SearchCount(ctx, id)
}

// IncrementSearches bumps the user's search counter by one
func (uc *UserUseCase) IncrementSearches(ctx context.Context, id string) error {
	return uc.repo.IncrementSearches(ctx, id)
}
