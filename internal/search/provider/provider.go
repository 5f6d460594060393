package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/sightline-ai/people-search-backend/internal/search/types"
)

// resultsPerQuery is how many items each executed query requests
const resultsPerQuery = 5

// Provider executes one structured query against a search backend
type Provider interface {
	// Search executes a single query. Errors are returned as-is, one
	// attempt per call.
	Search(ctx context.Context, query types.StructuredQuery) (*types.ResultPage, error)

	// ID returns the provider ID
	ID() types.ProviderID

	// Validate validates the provider configuration
	Validate() error
}

// BaseProvider provides common functionality for all providers
type BaseProvider struct {
	config     *types.ProviderConfig
	httpClient *http.Client
}

// NewBaseProvider creates a new base provider
func NewBaseProvider(config *types.ProviderConfig) *BaseProvider {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &BaseProvider{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// ID returns the provider ID
func (b *BaseProvider) ID() types.ProviderID {
	return b.config.ID
}

// Validate validates the provider configuration
func (b *BaseProvider) Validate() error {
	return b.config.Validate()
}

// Config returns the provider configuration
func (b *BaseProvider) Config() *types.ProviderConfig {
	return b.config
}

// HTTPClient returns the HTTP client
func (b *BaseProvider) HTTPClient() *http.Client {
	return b.httpClient
}
