package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// loadFile decodes the TOML file at path over cfg. A missing file is not an
// error; unknown keys are, so typos do not go unnoticed.
func loadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown keys %v", ErrInvalidConfig, undecoded)
	}
	return nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# tokencost configuration
# Environment variables override these values; CLI flags override both.

# server_port = ":8080"
# log_level = "info"              # debug, info, warn, error
# db_path = "~/.tokencost/tokencost.db"
# rate_limit_per_minute = 120     # per client IP, 0 disables
# cache_max_cost = 1000           # custom catalog entries cached in memory
# currency = "USD"                # default for custom models

# [recommendations]
# budget_multiplier = 1.5         # budget-friendly picks cost at most this x the cheapest
# premium_min_features = 1
# premium_min_models = 2          # premium is only suggested above this many models
# max_results = 4
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
