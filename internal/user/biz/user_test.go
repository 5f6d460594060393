package biz

import (
	"context"
	"testing"

	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users   map[string]*User // keyed by email
	created []*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) error {
	user.ID = "generated-id"
	f.users[user.Email] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrUserNotFound)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.New(apperrors.ErrUserNotFound)
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id, resumeText, additionalDetails string) error {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.ResumeText = resumeText
	u.AdditionalDetails = additionalDetails
	u.ProfileCompleted = true
	u.JoinedWaitlist = true
	return nil
}

func (f *fakeUserRepo) SearchCount(ctx context.Context, id string) (int, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return u.Searches, nil
}

func (f *fakeUserRepo) IncrementSearches(ctx context.Context, id string) error {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.Searches++
	return nil
}

func TestCreateUserLowercasesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo)

	user, err := uc.CreateUser(context.Background(), "jane", "  Jane.Doe@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", user.Email)
	assert.Equal(t, 0, user.Searches)
	assert.False(t, user.ProfileCompleted)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo)

	_, err := uc.CreateUser(context.Background(), "jane", "jane@example.com")
	require.NoError(t, err)

	_, err = uc.CreateUser(context.Background(), "jane2", "JANE@example.com")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrAuthEmailExists))
	assert.Len(t, repo.created, 1)
}

func TestCompleteProfileSetsFlags(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo)

	user, err := uc.CreateUser(context.Background(), "jane", "jane@example.com")
	require.NoError(t, err)

	err = uc.CompleteProfile(context.Background(), user.ID, "resume body", "open to relocation")
	require.NoError(t, err)

	stored, err := uc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.ProfileCompleted)
	assert.True(t, stored.JoinedWaitlist)
	assert.Equal(t, "resume body", stored.ResumeText)
}

func TestSearchCountTracksIncrements(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo)

	user, err := uc.CreateUser(context.Background(), "jane", "jane@example.com")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, uc.IncrementSearches(context.Background(), user.ID))
	}

	count, err := uc.SearchCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
