package config

import (
	"testing"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("SVDCONV_PATH", "")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("SVDCHECK_BROKERS", "")

	cfg := LoadFromEnv()

	if cfg.SVDConvPath != "svdconv" {
		t.Errorf("SVDConvPath = %q, want default %q", cfg.SVDConvPath, "svdconv")
	}
	if len(cfg.Brokers) != 0 {
		t.Errorf("Brokers = %v, want empty", cfg.Brokers)
	}
}

func TestLoadFromEnv_Brokers(t *testing.T) {
	t.Setenv("SVDCHECK_BROKERS", "localhost:19092, broker2:9092,")

	cfg := LoadFromEnv()

	if len(cfg.Brokers) != 2 {
		t.Fatalf("Brokers count = %d, want 2", len(cfg.Brokers))
	}
	if cfg.Brokers[0] != "localhost:19092" || cfg.Brokers[1] != "broker2:9092" {
		t.Errorf("Brokers = %v, want trimmed addresses", cfg.Brokers)
	}
}

func TestRequireGitHub(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "complete",
			cfg: Config{
				GitHubToken: "tok",
				Repository:  "owner/repo",
				HeadSHA:     "abc123",
			},
			wantErr: false,
		},
		{
			name:    "missing token",
			cfg:     Config{Repository: "owner/repo", HeadSHA: "abc123"},
			wantErr: true,
		},
		{
			name:    "missing repository",
			cfg:     Config{GitHubToken: "tok", HeadSHA: "abc123"},
			wantErr: true,
		},
		{
			name:    "missing sha",
			cfg:     Config{GitHubToken: "tok", Repository: "owner/repo"},
			wantErr: true,
		},
		{
			name:    "malformed repository",
			cfg:     Config{GitHubToken: "tok", Repository: "just-a-name", HeadSHA: "abc123"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.RequireGitHub()
			if (err != nil) != tt.wantErr {
				t.Errorf("RequireGitHub() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOwnerRepo(t *testing.T) {
	cfg := Config{Repository: "arm-software/cmsis-svd"}

	owner, repo, err := cfg.OwnerRepo()
	if err != nil {
		t.Fatalf("OwnerRepo() unexpected error: %v", err)
	}
	if owner != "arm-software" || repo != "cmsis-svd" {
		t.Errorf("OwnerRepo() = %q, %q", owner, repo)
	}
}
