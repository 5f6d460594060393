package oauth2

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Config holds the Google OAuth2 client settings
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("client_id and client_secret are required")
	}
	if c.RedirectURL == "" {
		return fmt.Errorf("redirect_url is required")
	}
	return nil
}

// GoogleAuthenticator drives the Google authorization-code flow and
// hands out per-user token sources that refresh and persist themselves.
type GoogleAuthenticator struct {
	oauth2Config *oauth2.Config
	store        TokenStore
}

// NewGoogleAuthenticator creates the authenticator
func NewGoogleAuthenticator(cfg *Config, store TokenStore) (*GoogleAuthenticator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("oauth2 config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("token store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &GoogleAuthenticator{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       cfg.Scopes,
			RedirectURL:  cfg.RedirectURL,
		},
		store: store,
	}, nil
}

// AuthURL builds the consent URL for the given CSRF state.
// offline access + forced approval so a refresh token is always issued.
func (a *GoogleAuthenticator) AuthURL(state string) string {
	return a.oauth2Config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
	)
}

// ExchangeCode trades an authorization code for a token
func (a *GoogleAuthenticator) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("no refresh token received, revoke app access and re-authorize")
	}
	return token, nil
}

// SaveUserToken persists a user's token set
func (a *GoogleAuthenticator) SaveUserToken(ctx context.Context, userID string, token *oauth2.Token) error {
	return a.store.SaveToken(ctx, userID, token)
}

// HasCredentials reports whether the user has a stored token set
func (a *GoogleAuthenticator) HasCredentials(ctx context.Context, userID string) bool {
	_, err := a.store.LoadToken(ctx, userID)
	return err == nil
}

// AccessToken returns a valid access token for the user, refreshing and
// persisting a rotated token when the stored one has expired.
func (a *GoogleAuthenticator) AccessToken(ctx context.Context, userID string) (string, error) {
	stored, err := a.store.LoadToken(ctx, userID)
	if err != nil {
		return "", err
	}

	fresh, err := a.oauth2Config.TokenSource(ctx, stored).Token()
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}

	if fresh.AccessToken != stored.AccessToken {
		if err := a.store.SaveToken(ctx, userID, fresh); err != nil {
			return "", fmt.Errorf("persist refreshed token: %w", err)
		}
	}

	return fresh.AccessToken, nil
}

// RevokeUserToken drops the user's stored credentials
func (a *GoogleAuthenticator) RevokeUserToken(ctx context.Context, userID string) error {
	return a.store.DeleteToken(ctx, userID)
}
