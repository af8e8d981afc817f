package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hpungsan/termcard/internal/config"
	"github.com/hpungsan/termcard/internal/errors"
	"github.com/hpungsan/termcard/internal/ops"
	"github.com/hpungsan/termcard/internal/profile"
)

// stubProfiles serves a single canned user; every other fetch degrades.
type stubProfiles struct {
	readme string
}

func (s *stubProfiles) User(ctx context.Context, username string) (*profile.Record, error) {
	if username != "octocat" {
		return nil, errors.NewNotFound(username)
	}
	return &profile.Record{Login: "octocat", Name: "The Octocat", Bio: "cat things"}, nil
}

func (s *stubProfiles) Repos(ctx context.Context, username string) ([]profile.RepoSummary, error) {
	return []profile.RepoSummary{{Name: "hello", Stars: 7, URL: "https://github.com/octocat/hello"}}, nil
}

func (s *stubProfiles) Events(ctx context.Context, username string, limit int) ([]profile.ActivityEntry, error) {
	return nil, nil
}

func (s *stubProfiles) Readme(ctx context.Context, username string) (string, error) {
	return s.readme, nil
}

func newWebTest(t *testing.T, readme string) *httptest.Server {
	t.Helper()
	gen := ops.NewGenerator(config.DefaultConfig(), &stubProfiles{readme: readme}, nil, nil)
	httpSrv := NewServer(gen, "test", "127.0.0.1", 0)
	ts := httptest.NewServer(httpSrv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestIndexPage(t *testing.T) {
	ts := newWebTest(t, "")
	resp, body := get(t, ts.URL+"/", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `name="user"`) {
		t.Error("index page missing the username field")
	}
	for _, theme := range []string{"clean", "linux", "cowsay", "figlet"} {
		if !strings.Contains(body, theme) {
			t.Errorf("theme %q missing from the form", theme)
		}
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}

func TestAPICard(t *testing.T) {
	ts := newWebTest(t, "")
	resp, body := get(t, ts.URL+"/api/card?user=octocat&theme=linux", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var out ops.GenerateOutput
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Username != "octocat" || out.Theme != "linux" {
		t.Errorf("out = %+v", out)
	}
	if !strings.Contains(out.Script, "TUX") {
		t.Error("linux art missing from script")
	}
	if out.Profile == nil || out.Profile.Name != "The Octocat" {
		t.Errorf("profile = %+v", out.Profile)
	}
	// No uploader is wired, so the command must be self-contained.
	if !strings.HasPrefix(out.Command, `echo "`) {
		t.Errorf("command = %q", out.Command)
	}
}

func TestAPICardMissingUser(t *testing.T) {
	ts := newWebTest(t, "")
	resp, body := get(t, ts.URL+"/api/card", nil)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var payload struct {
		Error struct {
			Code   string `json:"code"`
			Status int    `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Code != "INVALID_REQUEST" || payload.Error.Status != 400 {
		t.Errorf("error = %+v", payload.Error)
	}
}

func TestAPICardUnknownUser(t *testing.T) {
	ts := newWebTest(t, "")
	resp, _ := get(t, ts.URL+"/api/card?user=ghost", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCardPage(t *testing.T) {
	ts := newWebTest(t, "# About\n\nI build things.\n")
	resp, body := get(t, ts.URL+"/card?user=octocat", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(body, "| bash") {
		t.Error("card page missing the runnable command")
	}
	// README preview is rendered markdown, not raw.
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "I build things.") {
		t.Error("README preview missing or unrendered")
	}
}

func TestCardPageErrorIsHTML(t *testing.T) {
	ts := newWebTest(t, "")
	resp, body := get(t, ts.URL+"/card?user=ghost", nil)

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "<html") {
		t.Error("browser error should be an HTML page")
	}
	if !strings.Contains(body, "user not found: ghost") {
		t.Errorf("error message missing:\n%s", body)
	}
}

func TestCardPageErrorNegotiatesJSON(t *testing.T) {
	ts := newWebTest(t, "")
	resp, body := get(t, ts.URL+"/card?user=ghost", http.Header{"Accept": []string{"application/json"}})

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"code"`) {
		t.Errorf("expected a JSON error body, got:\n%s", body)
	}
}

func TestStaticServed(t *testing.T) {
	ts := newWebTest(t, "")
	resp, _ := get(t, ts.URL+"/static/style.css", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := newWebTest(t, "")
	resp, _ := get(t, ts.URL+"/nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
