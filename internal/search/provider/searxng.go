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

// SearXNGProvider implements the SearXNG search API
type SearXNGProvider struct {
	*BaseProvider
}

// NewSearXNGProvider creates a new SearXNG provider
func NewSearXNGProvider(config *types.ProviderConfig) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &SearXNGProvider{BaseProvider: NewBaseProvider(config)}, nil
}

// searxngResponse represents a SearXNG API response
type searxngResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search executes one query against a SearXNG instance
func (p *SearXNGProvider) Search(ctx context.Context, query types.StructuredQuery) (*types.ResultPage, error) {
	if query == "" {
		return nil, types.ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("pageno", "1")
	params.Set("number_of_results", strconv.Itoa(resultsPerQuery))

	apiURL := fmt.Sprintf("%s/search?%s", p.config.APIHost, params.Encode())
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

	var searxngResp searxngResponse
	if err := json.NewDecoder(resp.Body).Decode(&searxngResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// cap at the per-query budget, SearXNG may ignore number_of_results
	items := searxngResp.Results
	if len(items) > resultsPerQuery {
		items = items[:resultsPerQuery]
	}

	results := make([]types.RawResult, len(items))
	for i, r := range items {
		results[i] = types.RawResult{
			Title:   r.Title,
			Link:    r.URL,
			Snippet: r.Content,
		}
	}

	return types.NewResultPage(results), nil
}
