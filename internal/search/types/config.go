package types

// ProviderID identifies a search backend
type ProviderID string

const (
	ProviderGoogleCSE ProviderID = "google"
	ProviderSearXNG   ProviderID = "searxng"
)

// ProviderConfig configures a search backend
type ProviderConfig struct {
	ID       ProviderID
	APIKey   string // Google CSE key
	EngineID string // Google CSE cx
	APIHost  string // SearXNG instance URL
	Timeout  int    // seconds, 0 means default
}

// Validate checks the fields the selected backend requires
func (c *ProviderConfig) Validate() error {
	switch c.ID {
	case ProviderGoogleCSE:
		if c.APIKey == "" {
			return ErrMissingAPIKey
		}
		if c.EngineID == "" {
			return ErrMissingEngineID
		}
	case ProviderSearXNG:
		if c.APIHost == "" {
			return ErrMissingAPIHost
		}
	default:
		return ErrInvalidProviderID
	}
	return nil
}
