// Package joke fetches a single joke line for the cowsay theme.
package joke

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPClient is the subset of *http.Client the client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches jokes from an icanhazdadjoke-compatible endpoint.
type Client struct {
	url        string
	timeout    time.Duration
	httpClient HTTPClient
}

// NewClient creates a joke client. The timeout bounds every fetch; callers
// treat expiry the same as any other failure.
func NewClient(url string, timeout time.Duration, httpClient HTTPClient) *Client {
	return &Client{url: url, timeout: timeout, httpClient: httpClient}
}

// Joke fetches one joke. The request negotiates JSON and is cancelled when
// the client's timeout expires.
func (c *Client) Joke(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "termcard (https://github.com/hpungsan/termcard)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("joke provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Joke string `json:"joke"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode joke response: %w", err)
	}

	return strings.TrimSpace(payload.Joke), nil
}
