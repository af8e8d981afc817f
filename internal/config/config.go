package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// GitHubAPIBase is the base URL for the GitHub REST API.
	GitHubAPIBase string `json:"github_api_base,omitempty"`

	// GitHubToken is an optional token sent as a Bearer credential to raise
	// rate limits. Also settable via the GITHUB_TOKEN environment variable,
	// which takes precedence over the file.
	GitHubToken string `json:"github_token,omitempty"`

	// JokeURL is the joke provider endpoint (must answer JSON when asked).
	JokeURL string `json:"joke_url,omitempty"`

	// PasteURL is the paste host the generated script is uploaded to.
	PasteURL string `json:"paste_url,omitempty"`

	// TopRepoCount is how many starred repositories the card shows.
	TopRepoCount int `json:"top_repo_count,omitempty"`

	// ActivityLimit is how many recent public events the card shows.
	ActivityLimit int `json:"activity_limit,omitempty"`

	// JokeTimeoutSecs bounds the joke fetch; on expiry the card simply has
	// no joke.
	JokeTimeoutSecs int `json:"joke_timeout_secs,omitempty"`

	// RequestTimeoutSecs bounds each outbound GitHub/paste call.
	RequestTimeoutSecs int `json:"request_timeout_secs,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		GitHubAPIBase:      "https://api.github.com",
		JokeURL:            "https://icanhazdadjoke.com/",
		PasteURL:           "https://0x0.st",
		TopRepoCount:       3,
		ActivityLimit:      5,
		JokeTimeoutSecs:    3,
		RequestTimeoutSecs: 15,
	}
}

// Load loads configuration from baseDir/config.json and applies environment
// overrides. Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.termcard.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHubToken = token
	}
	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// when non-zero.
func Merge(base, overlay *Config) *Config {
	result := *overlay

	if result.GitHubAPIBase == "" {
		result.GitHubAPIBase = base.GitHubAPIBase
	}
	if result.GitHubToken == "" {
		result.GitHubToken = base.GitHubToken
	}
	if result.JokeURL == "" {
		result.JokeURL = base.JokeURL
	}
	if result.PasteURL == "" {
		result.PasteURL = base.PasteURL
	}
	if result.TopRepoCount == 0 {
		result.TopRepoCount = base.TopRepoCount
	}
	if result.ActivityLimit == 0 {
		result.ActivityLimit = base.ActivityLimit
	}
	if result.JokeTimeoutSecs == 0 {
		result.JokeTimeoutSecs = base.JokeTimeoutSecs
	}
	if result.RequestTimeoutSecs == 0 {
		result.RequestTimeoutSecs = base.RequestTimeoutSecs
	}

	return &result
}
