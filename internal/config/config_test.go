package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerPort != ":8080" {
		t.Errorf("ServerPort = %q, want :8080", cfg.ServerPort)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Errorf("RateLimitPerMinute = %d, want 120", cfg.RateLimitPerMinute)
	}
	if cfg.DBPath != DBPath() {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, DBPath())
	}

	opts := cfg.RecommendOptions()
	if opts.BudgetMultiplier.String() != "1.5" || opts.MaxResults != 4 ||
		opts.PremiumMinFeatures != 1 || opts.PremiumMinModels != 2 {
		t.Errorf("unexpected recommend options %+v", opts)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())
	path := writeConfig(t, `
server_port = ":9090"
log_level = "debug"
rate_limit_per_minute = 30

[recommendations]
budget_multiplier = 2.0
max_results = 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerPort != ":9090" || cfg.RateLimitPerMinute != 30 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if got := cfg.RecommendOptions(); got.BudgetMultiplier.String() != "2" || got.MaxResults != 3 {
		t.Errorf("recommend options = %+v", got)
	}
	// Untouched keys keep their defaults.
	if cfg.Recommendations.PremiumMinFeatures != 1 {
		t.Errorf("PremiumMinFeatures = %d, want 1", cfg.Recommendations.PremiumMinFeatures)
	}

	t.Setenv("SERVER_PORT", ":7070")
	t.Setenv("RECOMMEND_MAX_RESULTS", "2")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerPort != ":7070" {
		t.Errorf("ServerPort = %q, want env override :7070", cfg.ServerPort)
	}
	if cfg.Recommendations.MaxResults != 2 {
		t.Errorf("MaxResults = %d, want env override 2", cfg.Recommendations.MaxResults)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	tests := []struct {
		name string
		body string
	}{
		{"unknown key", `sever_port = ":1"`},
		{"bad log level", `log_level = "loud"`},
		{"negative rate limit", `rate_limit_per_minute = -1`},
		{"budget below one", "[recommendations]\nbudget_multiplier = 0.5"},
		{"zero max results", "[recommendations]\nmax_results = 0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("EnsureConfigFile() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "config.toml")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// The generated file is all comments and must load cleanly.
	if _, err := Load(""); err != nil {
		t.Errorf("Load() of generated file error: %v", err)
	}
}
