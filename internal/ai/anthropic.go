package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com"
	anthropicVersion      = "2023-06-01"
	anthropicDefaultModel = "claude-3-opus-20240229"
)

// AnthropicProvider calls the Anthropic messages API directly
type AnthropicProvider struct {
	config *Config
	client *http.Client
}

// NewAnthropic creates an Anthropic completion provider
func NewAnthropic(config *Config) (*AnthropicProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cfg := config.withDefaults(anthropicBaseURL, anthropicDefaultModel)

	return &AnthropicProvider{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float32            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Role       string             `json:"role"`
	Content    []anthropicContent `json:"content"`
	Model      string             `json:"model"`
	StopReason string             `json:"stop_reason"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends a single user message and returns the first text block
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	reqBody, err := json.Marshal(anthropicRequest{
		Model:       p.config.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", NewProviderError(p.Name(), "marshal request failed", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/v1/messages", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", NewProviderError(p.Name(), "create request failed", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.config.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", NewProviderError(p.Name(), "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewProviderError(p.Name(), "read response failed", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("API error: %s", string(body)),
		}
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", NewProviderError(p.Name(), "unmarshal response failed", err)
	}

	if len(parsed.Content) == 0 {
		return "", NewProviderError(p.Name(), "empty response content", nil)
	}
	return parsed.Content[0].Text, nil
}

// Close releases idle connections
func (p *AnthropicProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
