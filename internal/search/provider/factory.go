package provider

import (
	"fmt"
	"sync"

	"github.com/sightline-ai/people-search-backend/internal/search/types"
)

// Factory creates provider instances
type Factory struct {
	mu           sync.RWMutex
	constructors map[types.ProviderID]func(*types.ProviderConfig) (Provider, error)
}

// NewFactory creates a new provider factory
func NewFactory() *Factory {
	f := &Factory{
		constructors: make(map[types.ProviderID]func(*types.ProviderConfig) (Provider, error)),
	}

	f.Register(types.ProviderGoogleCSE, NewGoogleCSEProvider)
	f.Register(types.ProviderSearXNG, NewSearXNGProvider)

	return f
}

// Register registers a provider constructor
func (f *Factory) Register(id types.ProviderID, constructor func(*types.ProviderConfig) (Provider, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[id] = constructor
}

// Create creates a provider instance from configuration
func (f *Factory) Create(config *types.ProviderConfig) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	f.mu.RLock()
	constructor, exists := f.constructors[config.ID]
	f.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidProviderID, config.ID)
	}

	return constructor(config)
}

// ListProviders returns all registered provider IDs
func (f *Factory) ListProviders() []types.ProviderID {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]types.ProviderID, 0, len(f.constructors))
	for id := range f.constructors {
		ids = append(ids, id)
	}
	return ids
}
