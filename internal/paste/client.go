// Package paste uploads generated scripts to a 0x0.st-style paste host.
// The upload is always best-effort at the ops layer; a failure here only
// costs the hosted one-liner, never the card.
package paste

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// HTTPClient is the subset of *http.Client the client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client uploads files to a paste host that answers with a bare URL.
type Client struct {
	url        string
	httpClient HTTPClient
}

// NewClient creates a paste client.
func NewClient(url string, httpClient HTTPClient) *Client {
	return &Client{url: url, httpClient: httpClient}
}

// Upload posts the script as a multipart file and returns the hosted URL.
// The filename carries a ULID so repeated uploads never collide.
func (c *Client) Upload(ctx context.Context, body string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", fmt.Sprintf("card-%s.sh", newID()))
	if err != nil {
		return "", err
	}
	if _, err := io.WriteString(part, body); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("User-Agent", "termcard")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("paste host returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	url := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(url, "http") {
		return "", fmt.Errorf("paste host returned unexpected body %q", truncate(url, 64))
	}
	return url, nil
}

func newID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
