// Package config provides configuration management for the svdcheck tool.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	// SVDConvPath is the path to the SVDConv binary. Defaults to "svdconv"
	// resolved via PATH.
	SVDConvPath string

	// GitHubToken authenticates check-run API calls.
	GitHubToken string

	// Repository is the "owner/repo" slug, as provided by GitHub Actions.
	Repository string

	// HeadSHA is the commit to attach the check run to (GITHUB_SHA).
	// For pull_request events the event payload's head SHA takes priority;
	// see checks.ResolveHeadSHA.
	HeadSHA string

	// EventPath points at the Actions event payload JSON, if any.
	EventPath string

	// PostgresDSN enables run-history recording when set.
	PostgresDSN string

	// Brokers enables finding-event emission when non-empty.
	Brokers []string
}

// LoadFromEnv loads configuration from environment variables.
// Only SVDConvPath is defaulted; the GitHub fields are validated lazily by
// RequireGitHub so that local-only modes (triage, mcp) run without them.
func LoadFromEnv() *Config {
	cfg := &Config{
		SVDConvPath: os.Getenv("SVDCONV_PATH"),
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		Repository:  os.Getenv("GITHUB_REPOSITORY"),
		HeadSHA:     os.Getenv("GITHUB_SHA"),
		EventPath:   os.Getenv("GITHUB_EVENT_PATH"),
		PostgresDSN: os.Getenv("SVDCHECK_POSTGRES_DSN"),
	}

	if cfg.SVDConvPath == "" {
		cfg.SVDConvPath = "svdconv"
	}

	if brokers := os.Getenv("SVDCHECK_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Brokers = append(cfg.Brokers, b)
			}
		}
	}

	return cfg
}

// RequireGitHub validates the fields needed to publish a check run.
func (c *Config) RequireGitHub() error {
	switch {
	case c.GitHubToken == "":
		return fmt.Errorf("GITHUB_TOKEN environment variable is required")
	case c.Repository == "":
		return fmt.Errorf("GITHUB_REPOSITORY environment variable is required")
	case c.HeadSHA == "":
		return fmt.Errorf("GITHUB_SHA environment variable is required")
	}
	if _, _, err := c.OwnerRepo(); err != nil {
		return err
	}
	return nil
}

// OwnerRepo splits the "owner/repo" slug.
func (c *Config) OwnerRepo() (owner, repo string, err error) {
	parts := strings.SplitN(c.Repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GITHUB_REPOSITORY %q, want owner/repo", c.Repository)
	}
	return parts[0], parts[1], nil
}
