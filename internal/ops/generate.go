// Package ops implements the card generation operation end-to-end:
// concurrent profile fetches, rendering, assembly, best-effort upload, and
// the final command string.
package ops

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/hpungsan/termcard/internal/config"
	"github.com/hpungsan/termcard/internal/errors"
	"github.com/hpungsan/termcard/internal/profile"
	"github.com/hpungsan/termcard/internal/sanitize"
	"github.com/hpungsan/termcard/internal/script"
)

// ProfileSource provides the subject's public data. Only User is fatal on
// failure; the rest are best-effort.
type ProfileSource interface {
	User(ctx context.Context, username string) (*profile.Record, error)
	Repos(ctx context.Context, username string) ([]profile.RepoSummary, error)
	Events(ctx context.Context, username string, limit int) ([]profile.ActivityEntry, error)
	Readme(ctx context.Context, username string) (string, error)
}

// JokeSource provides a joke line for the cowsay theme.
type JokeSource interface {
	Joke(ctx context.Context) (string, error)
}

// Uploader sends the assembled script to the distribution sink and returns
// its hosted URL.
type Uploader interface {
	Upload(ctx context.Context, body string) (string, error)
}

// Generator holds the collaborators for the Generate operation. It keeps
// no per-request state and is safe for concurrent use.
type Generator struct {
	cfg      *config.Config
	profiles ProfileSource
	jokes    JokeSource
	uploads  Uploader
}

// NewGenerator creates a Generator. jokes and uploads may be nil; the
// corresponding steps are then skipped.
func NewGenerator(cfg *config.Config, profiles ProfileSource, jokes JokeSource, uploads Uploader) *Generator {
	return &Generator{cfg: cfg, profiles: profiles, jokes: jokes, uploads: uploads}
}

// GenerateInput contains parameters for the Generate operation.
type GenerateInput struct {
	Username string
	Theme    string
	Upload   bool
}

// GenerateOutput contains the result of the Generate operation.
type GenerateOutput struct {
	Username string          `json:"username"`
	Theme    string          `json:"theme"`
	Profile  *profile.Record `json:"profile"`
	Script   string          `json:"script"`
	Command  string          `json:"command"`
	URL      string          `json:"url,omitempty"`

	// Readme is the raw profile README, kept for the web preview panel.
	Readme string `json:"-"`
}

// Generate builds the card for one username. The primary profile fetch is
// fatal on failure; repositories, activity, README, joke, and upload all
// degrade to empty values, so a request only ever fails on bad input or a
// broken primary fetch.
func (g *Generator) Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, errors.NewInvalidRequest("username is required")
	}
	theme := script.ParseTheme(input.Theme)

	var (
		wg      sync.WaitGroup
		rec     *profile.Record
		userErr error
		repos   []profile.RepoSummary
		events  []profile.ActivityEntry
		readme  string
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		rec, userErr = g.profiles.User(ctx, username)
	}()
	go func() {
		defer wg.Done()
		repos = fetchOrDefault(ctx, "repos", func(ctx context.Context) ([]profile.RepoSummary, error) {
			return g.profiles.Repos(ctx, username)
		})
	}()
	go func() {
		defer wg.Done()
		events = fetchOrDefault(ctx, "events", func(ctx context.Context) ([]profile.ActivityEntry, error) {
			return g.profiles.Events(ctx, username, g.cfg.ActivityLimit)
		})
	}()
	go func() {
		defer wg.Done()
		readme = fetchOrDefault(ctx, "readme", func(ctx context.Context) (string, error) {
			return g.profiles.Readme(ctx, username)
		})
	}()
	wg.Wait()

	if userErr != nil {
		return nil, userErr
	}

	rec.Repos = profile.TopRepos(repos, g.cfg.TopRepoCount)
	rec.Activity = events

	// The joke only appears in the cowsay preamble, so no other theme pays
	// for the fetch.
	jokeText := ""
	if theme == script.ThemeCowsay && g.jokes != nil {
		jokeText = fetchOrDefault(ctx, "joke", g.jokes.Joke)
	}

	preamble := script.Preamble(theme, username, jokeText)

	lines := profile.Format(rec)
	if readmeLines := sanitize.Sanitize(readme); len(readmeLines) > 0 {
		lines = append(lines, script.EchoLine(""))
		lines = append(lines, readmeLines...)
	}

	body := script.Assemble(preamble, lines, theme, username)

	hostedURL := ""
	if input.Upload && g.uploads != nil {
		hostedURL = fetchOrDefault(ctx, "upload", func(ctx context.Context) (string, error) {
			return g.uploads.Upload(ctx, body)
		})
	}

	return &GenerateOutput{
		Username: username,
		Theme:    theme.String(),
		Profile:  rec,
		Script:   body,
		Command:  script.BuildCommand(body, hostedURL),
		URL:      hostedURL,
		Readme:   readme,
	}, nil
}

// fetchOrDefault runs a best-effort call and degrades to the zero value on
// any failure. Failures are logged for operators but never surface to the
// caller.
func fetchOrDefault[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) T {
	v, err := fn(ctx)
	if err != nil {
		log.Printf("best-effort %s fetch failed: %v", name, err)
		var zero T
		return zero
	}
	return v
}
