//go:build integration

package data

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
	"github.com/sightline-ai/people-search-backend/internal/user/biz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestRepo(t *testing.T) (biz.UserRepo, func()) {
	t.Helper()

	dsn := fmt.Sprintf("host=%s port=5432 user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "people_search_test"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	require.NoError(t, db.AutoMigrate(&UserPO{}))

	cleanup := func() {
		db.Exec("DELETE FROM users")
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return NewUserRepo(db), cleanup
}

func TestSearchCountUnknownUser(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	_, err := repo.SearchCount(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUserNotFound))
}

func TestSearchCountAfterIncrements(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	user := &biz.User{
		Username:  "jane",
		Email:     "jane@example.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), user))

	count, err := repo.SearchCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.IncrementSearches(context.Background(), user.ID))
	}

	count, err = repo.SearchCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIncrementSearchesUnknownUser(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	err := repo.IncrementSearches(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUserNotFound))
}
