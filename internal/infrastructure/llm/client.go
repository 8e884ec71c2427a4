// Package llm implements the structured-completion provider client over a
// chat-completions style HTTP API.
package llm

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

// Client calls a chat-completions endpoint and returns the raw model text
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
}

// NewClient creates a completion client. Completion providers typically
// allow a few requests per second; 2 rps with a burst of 5 stays well under
// every common tier.
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one completion request and returns the model text.
// Transient failures are retried up to 3 times with growing backoff.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		body, status, err := c.doRequest(ctx, payload)
		if err != nil {
			log.Printf("[LLM] request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		if status != http.StatusOK {
			log.Printf("[LLM] API error (attempt %d) - status: %d, body: %s", attempt, status, truncate(string(body), 300))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrProviderFailure, status)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var parsed chatResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
		}
		if parsed.Error != nil {
			return "", fmt.Errorf("%w: %s", domain.ErrProviderFailure, parsed.Error.Message)
		}
		if len(parsed.Choices) == 0 {
			return "", fmt.Errorf("%w: empty choices", domain.ErrParseFailure)
		}

		return parsed.Choices[0].Message.Content, nil
	}

	return "", lastErr
}

// doRequest executes one POST against the chat-completions endpoint
func (c *Client) doRequest(ctx context.Context, payload []byte) ([]byte, int, error) {
	endpoint := fmt.Sprintf("%s/v1/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
