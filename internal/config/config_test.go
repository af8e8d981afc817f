package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHubAPIBase != "https://api.github.com" {
		t.Errorf("GitHubAPIBase = %q, want default", cfg.GitHubAPIBase)
	}
	if cfg.TopRepoCount != 3 {
		t.Errorf("TopRepoCount = %d, want 3", cfg.TopRepoCount)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{"top_repo_count": 5, "paste_url": "https://paste.example"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TopRepoCount != 5 {
		t.Errorf("TopRepoCount = %d, want 5", cfg.TopRepoCount)
	}
	if cfg.PasteURL != "https://paste.example" {
		t.Errorf("PasteURL = %q, want override", cfg.PasteURL)
	}
	// Untouched fields keep defaults.
	if cfg.JokeTimeoutSecs != 3 {
		t.Errorf("JokeTimeoutSecs = %d, want default 3", cfg.JokeTimeoutSecs)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestEnvTokenOverride(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")

	dir := t.TempDir()
	content := `{"github_token": "file-token"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHubToken != "env-token" {
		t.Errorf("GitHubToken = %q, want env override", cfg.GitHubToken)
	}
}

func TestMergeZeroOverlay(t *testing.T) {
	merged := Merge(DefaultConfig(), &Config{})
	if merged.ActivityLimit != 5 {
		t.Errorf("ActivityLimit = %d, want default 5", merged.ActivityLimit)
	}
	if merged.JokeURL == "" {
		t.Error("JokeURL should fall back to default")
	}
}
