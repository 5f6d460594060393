package types

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidProviderID = errors.New("invalid provider ID")
	ErrMissingAPIKey     = errors.New("missing API key")
	ErrMissingEngineID   = errors.New("missing search engine ID")
	ErrMissingAPIHost    = errors.New("missing API host")

	// Request errors
	ErrEmptyQuery = errors.New("empty search query")

	// Synthesis errors
	ErrSynthesisParse = errors.New("synthesized output is not a JSON array of queries")
	ErrPromptTooLarge = errors.New("prompt exceeds the model context budget")
)

// ProviderError wraps a search backend failure
type ProviderError struct {
	Provider ProviderID
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
