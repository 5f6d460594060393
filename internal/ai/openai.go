package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

const openaiDefaultModel = openai.GPT4o

// OpenAIProvider wraps the OpenAI chat completions API
type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

// NewOpenAI creates an OpenAI completion provider
func NewOpenAI(config *Config) (*OpenAIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cfg := config.withDefaults("", openaiDefaultModel)

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete sends a single user message and returns the first choice
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", NewProviderError(p.Name(), "request failed", err)
	}

	if len(resp.Choices) == 0 {
		return "", NewProviderError(p.Name(), "empty response choices", nil)
	}
	return resp.Choices[0].Message.Content, nil
}
