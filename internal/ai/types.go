package ai

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingAPIKey  = errors.New("ai: api key is required")
	ErrUnknownBackend = errors.New("ai: unknown provider")
)

// Completer produces a single text completion for a prompt
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
	Name() string
}

// Config configures a completion provider
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c *Config) withDefaults(baseURL, model string) *Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = baseURL
	}
	if out.Model == "" {
		out.Model = model
	}
	if out.Timeout <= 0 {
		out.Timeout = 120 * time.Second
	}
	return &out
}

// ProviderError wraps an upstream model API failure
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s provider error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s provider error: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s provider error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a ProviderError wrapping err
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Message: message, Err: err}
}
