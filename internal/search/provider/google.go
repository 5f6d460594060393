package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sightline-ai/people-search-backend/internal/search/types"
)

const googleAPIHost = "https://www.googleapis.com"

// GoogleCSEProvider implements the Google Custom Search JSON API
type GoogleCSEProvider struct {
	*BaseProvider
	apiHost string
}

// NewGoogleCSEProvider creates a new Google CSE provider
func NewGoogleCSEProvider(config *types.ProviderConfig) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	host := config.APIHost
	if host == "" {
		host = googleAPIHost
	}

	return &GoogleCSEProvider{
		BaseProvider: NewBaseProvider(config),
		apiHost:      host,
	}, nil
}

// googleResponse represents a Custom Search API response
type googleResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search executes one query. A response without items yields an empty
// page, not an error.
func (p *GoogleCSEProvider) Search(ctx context.Context, query types.StructuredQuery) (*types.ResultPage, error) {
	if query == "" {
		return nil, types.ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("key", p.config.APIKey)
	params.Set("cx", p.config.EngineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(resultsPerQuery))

	apiURL := fmt.Sprintf("%s/customsearch/v1?%s", p.apiHost, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &types.ProviderError{
			Provider: p.ID(),
			Code:     "REQUEST_FAILED",
			Message:  "Failed to execute request",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &types.ProviderError{
			Provider: p.ID(),
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  string(body),
		}
	}

	var googleResp googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&googleResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]types.RawResult, len(googleResp.Items))
	for i, item := range googleResp.Items {
		results[i] = types.RawResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		}
	}

	return types.NewResultPage(results), nil
}
