package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 4096, req.MaxTokens)
		assert.Equal(t, float32(0), req.Temperature)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{{Type: "text", Text: `["result"]`}},
		})
	}))
	defer srv.Close()

	p, err := NewAnthropic(&Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "find people", 4096, 0)
	require.NoError(t, err)
	assert.Equal(t, `["result"]`, out)
}

func TestAnthropicCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	p, err := NewAnthropic(&Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "prompt", 16, 0)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
}

func TestNewAnthropicRequiresKey(t *testing.T) {
	_, err := NewAnthropic(&Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewCompleter(t *testing.T) {
	c, err := NewCompleter("anthropic", &Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", c.Name())

	c, err = NewCompleter("openai", &Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Name())

	_, err = NewCompleter("mystery", &Config{APIKey: "k"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
