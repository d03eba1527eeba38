package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// HomeEnv overrides the data directory.
const HomeEnv = "TOKENCOST_HOME"

// DataDir returns the path to the tokencost data directory.
// - $TOKENCOST_HOME when set
// - Windows: %APPDATA%\tokencost
// - Other OS: ~/.tokencost
func DataDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tokencost")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".tokencost"
	}
	return filepath.Join(home, ".tokencost")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// DBPath returns the default path to the SQLite database file.
func DBPath() string {
	return filepath.Join(DataDir(), "tokencost.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
