// Package config loads tokencost settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/shopspring/decimal"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration.
// Priority: CLI flags → Env vars → config.toml → defaults
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":8080")
	ServerPort string `toml:"server_port" env:"SERVER_PORT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`

	// DBPath overrides the SQLite file location.
	DBPath string `toml:"db_path" env:"TOKENCOST_DB_PATH"`

	// RateLimitPerMinute is the per-client request budget; 0 disables it.
	RateLimitPerMinute int `toml:"rate_limit_per_minute" env:"RATE_LIMIT_PER_MINUTE"`

	// CacheMaxCost is the number of custom catalog entries kept in memory.
	CacheMaxCost int64 `toml:"cache_max_cost" env:"CACHE_MAX_COST"`

	// Currency is assigned to custom models created without one.
	Currency string `toml:"currency" env:"CURRENCY"`

	Recommendations Recommendations `toml:"recommendations" envPrefix:"RECOMMEND_"`
}

// Recommendations tunes the recommendation heuristics.
type Recommendations struct {
	BudgetMultiplier   float64 `toml:"budget_multiplier" env:"BUDGET_MULTIPLIER"`
	PremiumMinFeatures int     `toml:"premium_min_features" env:"PREMIUM_MIN_FEATURES"`
	PremiumMinModels   int     `toml:"premium_min_models" env:"PREMIUM_MIN_MODELS"`
	MaxResults         int     `toml:"max_results" env:"MAX_RESULTS"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := pricing.DefaultRecommendOptions()
	budget, _ := opts.BudgetMultiplier.Float64()
	return &Config{
		ServerPort:         ":8080",
		LogLevel:           "info",
		RateLimitPerMinute: 120,
		CacheMaxCost:       1000,
		Currency:           "USD",
		Recommendations: Recommendations{
			BudgetMultiplier:   budget,
			PremiumMinFeatures: opts.PremiumMinFeatures,
			PremiumMinModels:   opts.PremiumMinModels,
			MaxResults:         opts.MaxResults,
		},
	}
}

// Load reads defaults, then the TOML file at path (if it exists), then the
// environment. An empty path uses ConfigPath().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
	}
	if err := loadFile(path, cfg); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = DBPath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("%w: server_port is empty", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("%w: rate_limit_per_minute must be >= 0", ErrInvalidConfig)
	}
	if c.CacheMaxCost <= 0 {
		return fmt.Errorf("%w: cache_max_cost must be > 0", ErrInvalidConfig)
	}
	r := c.Recommendations
	if r.BudgetMultiplier < 1 {
		return fmt.Errorf("%w: recommendations.budget_multiplier must be >= 1", ErrInvalidConfig)
	}
	if r.PremiumMinFeatures < 0 || r.PremiumMinModels < 0 {
		return fmt.Errorf("%w: recommendations premium thresholds must be >= 0", ErrInvalidConfig)
	}
	if r.MaxResults <= 0 {
		return fmt.Errorf("%w: recommendations.max_results must be > 0", ErrInvalidConfig)
	}
	return nil
}

// RecommendOptions converts the recommendation settings for the pricing engine.
func (c *Config) RecommendOptions() pricing.RecommendOptions {
	r := c.Recommendations
	return pricing.RecommendOptions{
		BudgetMultiplier:   decimal.NewFromFloat(r.BudgetMultiplier),
		PremiumMinFeatures: r.PremiumMinFeatures,
		PremiumMinModels:   r.PremiumMinModels,
		MaxResults:         r.MaxResults,
	}
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, s)
	}
}
