// Package github is a minimal read-only client for the pieces of the
// GitHub REST API the card needs: the user record, starred repositories,
// recent public events, and the profile README.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hpungsan/termcard/internal/errors"
	"github.com/hpungsan/termcard/internal/profile"
)

// HTTPClient is the subset of *http.Client the client needs (allows
// mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
}

// NewClient creates a GitHub client. token may be empty; it is only needed
// to raise rate limits.
func NewClient(baseURL, token string, httpClient HTTPClient) *Client {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// User fetches the public profile record for a username. A 404 from the
// provider maps to a NOT_FOUND error; any other non-2xx status is passed
// through as an UPSTREAM error with the provider's status code.
func (c *Client) User(ctx context.Context, username string) (*profile.Record, error) {
	var u githubUser
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.baseURL, username), username, &u); err != nil {
		return nil, err
	}

	return &profile.Record{
		Login:    u.Login,
		Name:     u.Name,
		Bio:      u.Bio,
		Company:  u.Company,
		Location: u.Location,
		Blog:     u.Blog,
		Twitter:  u.TwitterUsername,
	}, nil
}

// Repos fetches up to 100 recently-updated repositories and returns the
// star-bearing ones in fetch order. Selection of the top N is the
// caller's policy.
func (c *Client) Repos(ctx context.Context, username string) ([]profile.RepoSummary, error) {
	var ghRepos []githubRepo
	url := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", c.baseURL, username)
	if err := c.getJSON(ctx, url, username, &ghRepos); err != nil {
		return nil, err
	}

	repos := make([]profile.RepoSummary, 0, len(ghRepos))
	for _, r := range ghRepos {
		if r.StargazersCount <= 0 {
			continue
		}
		repos = append(repos, profile.RepoSummary{
			Name:        r.Name,
			Stars:       r.StargazersCount,
			URL:         r.HTMLURL,
			Description: r.Description,
		})
	}
	return repos, nil
}

// eventTypes are the public event types the card reports on.
var eventTypes = map[string]bool{
	"PushEvent":        true,
	"PullRequestEvent": true,
	"IssuesEvent":      true,
	"CreateEvent":      true,
}

// Events fetches recent public events and maps them onto the card's small
// action vocabulary, capped at limit entries.
func (c *Client) Events(ctx context.Context, username string, limit int) ([]profile.ActivityEntry, error) {
	var ghEvents []githubEvent
	url := fmt.Sprintf("%s/users/%s/events/public?per_page=30", c.baseURL, username)
	if err := c.getJSON(ctx, url, username, &ghEvents); err != nil {
		return nil, err
	}

	entries := make([]profile.ActivityEntry, 0, limit)
	for _, e := range ghEvents {
		if !eventTypes[e.Type] {
			continue
		}
		entries = append(entries, profile.ActivityEntry{
			Repo:   e.Repo.Name,
			Action: actionLabel(e),
			URL:    "https://github.com/" + e.Repo.Name,
		})
		if len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

// actionLabel maps a GitHub event onto a human-readable action label.
func actionLabel(e githubEvent) string {
	switch e.Type {
	case "PushEvent":
		return "pushed to"
	case "PullRequestEvent":
		return "opened PR in"
	case "IssuesEvent":
		if e.Payload.Action != "" {
			return e.Payload.Action + " issue in"
		}
		return "opened issue in"
	case "CreateEvent":
		if e.Payload.RefType != "" {
			return "created " + e.Payload.RefType + " in"
		}
		return "created"
	default:
		return "contributed to"
	}
}

// Readme fetches the raw markdown of the user's profile README
// (the README of the repository named after the user). Returns an error
// for any non-200; the caller treats this fetch as best-effort.
func (c *Client) Readme(ctx context.Context, username string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, username, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "application/vnd.github.raw+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("readme fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// getJSON performs a GET against the API and decodes the JSON response.
// username is only used to build the NOT_FOUND error.
func (c *Client) getJSON(ctx context.Context, url, username string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("github request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.NewNotFound(username)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.NewUpstream(resp.StatusCode, fmt.Sprintf("github returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.NewInternal(fmt.Errorf("decode github response: %w", err))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "termcard")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// GitHub API response types.

type githubUser struct {
	Login           string `json:"login"`
	Name            string `json:"name"`
	Bio             string `json:"bio"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	Blog            string `json:"blog"`
	TwitterUsername string `json:"twitter_username"`
}

type githubRepo struct {
	Name            string `json:"name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
}

type githubEvent struct {
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Action  string `json:"action"`
		RefType string `json:"ref_type"`
	} `json:"payload"`
}
