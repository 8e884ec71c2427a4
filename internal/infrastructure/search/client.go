// Package search implements the web-search provider client
// (query, limit -> ranked snippets).
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/vendorscout/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client calls a Serper-style search API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a search client
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

type searchResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search returns up to limit ranked snippets for the query
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.SearchSnippet, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(searchRequest{Query: query, Num: limit})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/search", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Search] API error - status: %d, query: %q", resp.StatusCode, query)
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}

	snippets := make([]domain.SearchSnippet, 0, len(parsed.Organic))
	for _, item := range parsed.Organic {
		snippets = append(snippets, domain.SearchSnippet{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
		if len(snippets) >= limit {
			break
		}
	}

	log.Printf("[Search] %d snippets for query: %q", len(snippets), query)
	return snippets, nil
}
