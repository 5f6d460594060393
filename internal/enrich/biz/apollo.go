package biz

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const defaultApolloBaseURL = "https://api.apollo.io/api/v1"

var (
	// ErrNoEmail means the provider matched nobody with a revealed email
	ErrNoEmail = errors.New("no contact email found")
)

// UpstreamError carries the provider's failure status and body
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("apollo request failed: status %d: %s", e.StatusCode, e.Body)
}

// Person identifies the contact to enrich
type Person struct {
	FirstName   string
	LastName    string
	LinkedinURL string
}

// ApolloClient resolves contact emails through Apollo's people/match API
type ApolloClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewApolloClient creates the client
func NewApolloClient(apiKey, baseURL string) *ApolloClient {
	if baseURL == "" {
		baseURL = defaultApolloBaseURL
	}
	return &ApolloClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// MatchEmail looks up the person and returns their revealed email.
// Returns ErrNoEmail when the provider has no address for them.
func (c *ApolloClient) MatchEmail(ctx context.Context, person *Person) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"first_name":             person.FirstName,
		"last_name":              person.LastName,
		"linkedin_url":           person.LinkedinURL,
		"reveal_personal_emails": true,
	})
	if err != nil {
		return "", fmt.Errorf("marshal match request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/people/match", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create match request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("match request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read match response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	email := gjson.GetBytes(body, "person.email").String()
	if email == "" {
		return "", ErrNoEmail
	}
	return email, nil
}
