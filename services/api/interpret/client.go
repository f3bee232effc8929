// Package interpret talks to the hosted text-generation API that turns
// sensor readings into plain-language analysis.
package interpret

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client calls a hosted inference endpoint. The response contract is a
// JSON array whose first element carries generated_text; any other shape
// is treated as an error rather than guessed at.
type Client struct {
	http *resty.Client
	url  string
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type inferenceResult struct {
	GeneratedText string `json:"generated_text"`
}

// NewClient builds a client for the given model endpoint.
func NewClient(url, token string, timeout time.Duration) *Client {
	http := resty.New().
		SetAuthToken(token).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: http, url: url}
}

// Generate sends a prompt and returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(inferenceRequest{Inputs: prompt}).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("inference request: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", fmt.Errorf("inference API status %d: %s", resp.StatusCode(), snippet(resp.Body()))
	}

	var results []inferenceResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return "", fmt.Errorf("unexpected inference response shape: %w", err)
	}
	if len(results) == 0 || strings.TrimSpace(results[0].GeneratedText) == "" {
		return "", fmt.Errorf("inference response carried no generated text")
	}

	return results[0].GeneratedText, nil
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
