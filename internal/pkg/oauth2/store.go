package oauth2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// ErrTokenNotFound is returned when a user has no stored token set
var ErrTokenNotFound = errors.New("oauth2 token not found")

// TokenStore persists per-user OAuth2 token sets
type TokenStore interface {
	SaveToken(ctx context.Context, userID string, token *oauth2.Token) error
	LoadToken(ctx context.Context, userID string) (*oauth2.Token, error)
	DeleteToken(ctx context.Context, userID string) error
}

// UserToken is the gorm model for stored Google credentials,
// one row per user.
type UserToken struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       string    `gorm:"uniqueIndex;not null;size:36"`
	AccessToken  string    `gorm:"type:text;not null"`
	TokenType    string    `gorm:"size:50"`
	RefreshToken string    `gorm:"type:text"`
	Expiry       time.Time `gorm:"index"`
	TokenJSON    string    `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (UserToken) TableName() string {
	return "user_tokens"
}

// DatabaseTokenStore stores token sets in postgres via gorm
type DatabaseTokenStore struct {
	db *gorm.DB
}

// NewDatabaseTokenStore creates the store
func NewDatabaseTokenStore(db *gorm.DB) (*DatabaseTokenStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	return &DatabaseTokenStore{db: db}, nil
}

// SaveToken upserts the user's token row
func (s *DatabaseTokenStore) SaveToken(ctx context.Context, userID string, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("token is nil")
	}

	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	model := &UserToken{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		TokenJSON:    string(tokenJSON),
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Assign(map[string]interface{}{
			"access_token":  model.AccessToken,
			"token_type":    model.TokenType,
			"refresh_token": model.RefreshToken,
			"expiry":        model.Expiry,
			"token_json":    model.TokenJSON,
			"updated_at":    time.Now(),
		}).
		FirstOrCreate(&model)

	if result.Error != nil {
		return fmt.Errorf("save token: %w", result.Error)
	}
	return nil
}

// LoadToken reads the user's token row
func (s *DatabaseTokenStore) LoadToken(ctx context.Context, userID string) (*oauth2.Token, error) {
	var model UserToken

	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("load token: %w", result.Error)
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(model.TokenJSON), &token); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	return &token, nil
}

// DeleteToken removes the user's token row
func (s *DatabaseTokenStore) DeleteToken(ctx context.Context, userID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&UserToken{})

	if result.Error != nil {
		return fmt.Errorf("delete token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}
