package ops

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hpungsan/termcard/internal/config"
	"github.com/hpungsan/termcard/internal/errors"
	"github.com/hpungsan/termcard/internal/profile"
)

// fakeProfiles counts calls so tests can assert which fetches ran. The
// counters are atomic because Generate fans the fetches out.
type fakeProfiles struct {
	userCalls   atomic.Int32
	reposCalls  atomic.Int32
	eventsCalls atomic.Int32
	readmeCalls atomic.Int32

	user      *profile.Record
	userErr   error
	repos     []profile.RepoSummary
	reposErr  error
	events    []profile.ActivityEntry
	eventsErr error
	readme    string
	readmeErr error
}

func (f *fakeProfiles) User(ctx context.Context, username string) (*profile.Record, error) {
	f.userCalls.Add(1)
	if f.userErr != nil {
		return nil, f.userErr
	}
	if f.user != nil {
		rec := *f.user
		return &rec, nil
	}
	return &profile.Record{Login: username}, nil
}

func (f *fakeProfiles) Repos(ctx context.Context, username string) ([]profile.RepoSummary, error) {
	f.reposCalls.Add(1)
	return f.repos, f.reposErr
}

func (f *fakeProfiles) Events(ctx context.Context, username string, limit int) ([]profile.ActivityEntry, error) {
	f.eventsCalls.Add(1)
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	if len(f.events) > limit {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *fakeProfiles) Readme(ctx context.Context, username string) (string, error) {
	f.readmeCalls.Add(1)
	return f.readme, f.readmeErr
}

func (f *fakeProfiles) totalCalls() int32 {
	return f.userCalls.Load() + f.reposCalls.Load() + f.eventsCalls.Load() + f.readmeCalls.Load()
}

type fakeJokes struct {
	calls atomic.Int32
	joke  string
	err   error
}

func (f *fakeJokes) Joke(ctx context.Context) (string, error) {
	f.calls.Add(1)
	return f.joke, f.err
}

type fakeUploader struct {
	calls atomic.Int32
	url   string
	err   error
	body  string
}

func (f *fakeUploader) Upload(ctx context.Context, body string) (string, error) {
	f.calls.Add(1)
	f.body = body
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func newTestGenerator(p *fakeProfiles, j *fakeJokes, u *fakeUploader) *Generator {
	var jokes JokeSource
	if j != nil {
		jokes = j
	}
	var uploads Uploader
	if u != nil {
		uploads = u
	}
	return NewGenerator(config.DefaultConfig(), p, jokes, uploads)
}

func TestGenerateMissingUsername(t *testing.T) {
	profiles := &fakeProfiles{}
	gen := newTestGenerator(profiles, nil, nil)

	for _, username := range []string{"", "   "} {
		_, err := gen.Generate(context.Background(), GenerateInput{Username: username})
		if !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("username %q: err = %v, want INVALID_REQUEST", username, err)
		}
	}
	if n := profiles.totalCalls(); n != 0 {
		t.Errorf("missing username must not reach the provider, saw %d calls", n)
	}
}

func TestGenerateUserNotFoundPropagates(t *testing.T) {
	profiles := &fakeProfiles{userErr: errors.NewNotFound("ghost")}
	gen := newTestGenerator(profiles, nil, nil)

	_, err := gen.Generate(context.Background(), GenerateInput{Username: "ghost"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestGenerateHappyPathWithUpload(t *testing.T) {
	profiles := &fakeProfiles{
		user: &profile.Record{Login: "octocat", Name: "The Octocat", Bio: "cat things"},
		repos: []profile.RepoSummary{
			{Name: "c", Stars: 1, URL: "https://github.com/octocat/c"},
			{Name: "a", Stars: 9, URL: "https://github.com/octocat/a"},
			{Name: "b", Stars: 5, URL: "https://github.com/octocat/b"},
			{Name: "d", Stars: 3, URL: "https://github.com/octocat/d"},
		},
		events: []profile.ActivityEntry{
			{Repo: "octocat/a", Action: "pushed to", URL: "https://github.com/octocat/a"},
		},
	}
	uploader := &fakeUploader{url: "https://0x0.st/abc.sh"}
	gen := newTestGenerator(profiles, nil, uploader)

	out, err := gen.Generate(context.Background(), GenerateInput{Username: "octocat", Upload: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if out.Command != "curl -s https://0x0.st/abc.sh | bash" {
		t.Errorf("Command = %q", out.Command)
	}
	if out.URL != "https://0x0.st/abc.sh" {
		t.Errorf("URL = %q", out.URL)
	}
	if uploader.body != out.Script {
		t.Error("uploaded body must be the assembled script")
	}

	// Default top-repo policy cuts to three, highest stars first.
	wantRepos := []string{"a", "b", "d"}
	if len(out.Profile.Repos) != len(wantRepos) {
		t.Fatalf("Repos = %+v, want 3", out.Profile.Repos)
	}
	for i, name := range wantRepos {
		if out.Profile.Repos[i].Name != name {
			t.Errorf("repo %d = %q, want %q", i, out.Profile.Repos[i].Name, name)
		}
	}

	if !strings.HasPrefix(out.Script, "#!/bin/bash\n") {
		t.Errorf("script missing shebang: %q", out.Script[:40])
	}
	if !strings.Contains(out.Script, "pushed to octocat/a") {
		t.Error("activity missing from script")
	}
	if out.Theme != "clean" {
		t.Errorf("Theme = %q, want clean default", out.Theme)
	}
}

func TestGenerateBestEffortDegradation(t *testing.T) {
	profiles := &fakeProfiles{
		user:      &profile.Record{Login: "octocat"},
		reposErr:  fmt.Errorf("rate limited"),
		eventsErr: fmt.Errorf("rate limited"),
		readmeErr: fmt.Errorf("no profile readme"),
	}
	uploader := &fakeUploader{err: fmt.Errorf("paste host down")}
	gen := newTestGenerator(profiles, nil, uploader)

	out, err := gen.Generate(context.Background(), GenerateInput{Username: "octocat", Upload: true})
	if err != nil {
		t.Fatalf("best-effort failures must not fail the request: %v", err)
	}

	if len(out.Profile.Repos) != 0 || len(out.Profile.Activity) != 0 {
		t.Errorf("degraded profile should be empty, got %+v", out.Profile)
	}
	if out.URL != "" {
		t.Errorf("URL = %q, want empty after upload failure", out.URL)
	}
	if !strings.HasPrefix(out.Command, `echo "`) || !strings.HasSuffix(out.Command, `" | bash`) {
		t.Errorf("command must fall back to the inline form: %q", out.Command)
	}
	if !strings.Contains(out.Script, "https://github.com/octocat") {
		t.Error("card must still carry the profile link")
	}
}

func TestGenerateUploadDisabled(t *testing.T) {
	profiles := &fakeProfiles{user: &profile.Record{Login: "octocat"}}
	uploader := &fakeUploader{url: "https://0x0.st/abc.sh"}
	gen := newTestGenerator(profiles, nil, uploader)

	out, err := gen.Generate(context.Background(), GenerateInput{Username: "octocat", Upload: false})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n := uploader.calls.Load(); n != 0 {
		t.Errorf("uploader called %d times with upload disabled", n)
	}
	if out.URL != "" {
		t.Errorf("URL = %q, want empty", out.URL)
	}
}

func TestGenerateJokeOnlyForCowsay(t *testing.T) {
	profiles := &fakeProfiles{user: &profile.Record{Login: "octocat"}}
	jokes := &fakeJokes{joke: "What do you call a fish with no eyes? A fsh."}
	gen := newTestGenerator(profiles, jokes, nil)

	for _, theme := range []string{"clean", "linux", "figlet"} {
		if _, err := gen.Generate(context.Background(), GenerateInput{Username: "octocat", Theme: theme}); err != nil {
			t.Fatalf("Generate(%s): %v", theme, err)
		}
	}
	if n := jokes.calls.Load(); n != 0 {
		t.Fatalf("joke fetched %d times for non-cowsay themes", n)
	}

	out, err := gen.Generate(context.Background(), GenerateInput{Username: "octocat", Theme: "cowsay"})
	if err != nil {
		t.Fatalf("Generate(cowsay): %v", err)
	}
	if n := jokes.calls.Load(); n != 1 {
		t.Errorf("joke fetched %d times for cowsay, want 1", n)
	}
	if !strings.Contains(out.Script, "| cowsay") {
		t.Error("cowsay pipe missing from script")
	}
	if !strings.Contains(out.Script, "A fsh.") {
		t.Error("joke missing from script")
	}
}

// A joke carrying double quotes must arrive in the script escaped, leaving
// the script itself well-formed.
func TestGenerateJokeQuoteEscaping(t *testing.T) {
	profiles := &fakeProfiles{user: &profile.Record{Login: "octocat"}}
	jokes := &fakeJokes{joke: `My wife said "stop impersonating a flamingo" so I had to put my foot down.`}
	gen := newTestGenerator(profiles, jokes, nil)

	out, err := gen.Generate(context.Background(), GenerateInput{Username: "octocat", Theme: "cowsay"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out.Script, `\"stop impersonating a flamingo\"`) {
		t.Error("joke quotes not escaped in script")
	}
	if strings.Contains(out.Script, `\\\"`) {
		t.Error("joke quotes escaped twice")
	}
}

func TestGenerateJokeFailureDegrades(t *testing.T) {
	profiles := &fakeProfiles{user: &profile.Record{Login: "octocat"}}
	jokes := &fakeJokes{err: fmt.Errorf("timeout")}
	gen := newTestGenerator(profiles, jokes, nil)

	out, err := gen.Generate(context.Background(), GenerateInput{Username: "octocat", Theme: "cowsay"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out.Script, "Moo! Have a great day.") {
		t.Error("cowsay must fall back to the stock greeting without a joke")
	}
}

func TestGenerateUnknownThemeIsClean(t *testing.T) {
	profiles := &fakeProfiles{user: &profile.Record{Login: "octocat"}}
	gen := newTestGenerator(profiles, nil, nil)

	out, err := gen.Generate(context.Background(), GenerateInput{Username: "octocat", Theme: "holographic"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Theme != "clean" {
		t.Errorf("Theme = %q, want clean", out.Theme)
	}
	for _, marker := range []string{"TUX", "cowsay", "figlet"} {
		if strings.Contains(out.Script, marker) {
			t.Errorf("clean script carries %q", marker)
		}
	}
}

func TestGenerateReadmeAppendedAfterProfile(t *testing.T) {
	profiles := &fakeProfiles{
		user:   &profile.Record{Login: "octocat"},
		readme: "# About\n\nI build **tools** for terminals.\n",
	}
	gen := newTestGenerator(profiles, nil, nil)

	out, err := gen.Generate(context.Background(), GenerateInput{Username: "octocat"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	idxProfile := strings.Index(out.Script, "a developer on GitHub.")
	idxReadme := strings.Index(out.Script, "I build tools for terminals.")
	idxClose := strings.Index(out.Script, `${FGW}https://github.com/octocat${RST}`)
	if idxReadme < 0 {
		t.Fatalf("sanitized readme missing from script:\n%s", out.Script)
	}
	if !(idxProfile < idxReadme && idxReadme < idxClose) {
		t.Error("readme lines must sit between the profile block and the closing link")
	}
	if out.Readme != profiles.readme {
		t.Error("raw readme must be carried for the web preview")
	}
}

func TestGenerateTrimsUsername(t *testing.T) {
	profiles := &fakeProfiles{user: &profile.Record{Login: "octocat"}}
	gen := newTestGenerator(profiles, nil, nil)

	out, err := gen.Generate(context.Background(), GenerateInput{Username: "  octocat  "})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Username != "octocat" {
		t.Errorf("Username = %q, want trimmed", out.Username)
	}
}
