package ai

import "fmt"

// NewCompleter builds a provider by name
func NewCompleter(provider string, config *Config) (Completer, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(config)
	case "openai":
		return NewOpenAI(config)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, provider)
	}
}
