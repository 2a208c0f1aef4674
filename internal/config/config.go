// Package config loads the optional scour configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the optional scour configuration file.
type Config struct {
	Walk   WalkConfig   `toml:"walk"`
	Search SearchConfig `toml:"search"`
}

// WalkConfig holds persistent walk defaults.
type WalkConfig struct {
	Excludes      []string `toml:"excludes"`
	BufferKiB     *int     `toml:"buffer_kib"`
	ProgressEvery *int64   `toml:"progress_every"`
}

// SearchConfig holds persistent search defaults.
type SearchConfig struct {
	Volumes      []string `toml:"volumes"`
	MaxMatches   *int     `toml:"max_matches"`
	TimeLimitSec *int     `toml:"time_limit_secs"`
	MaxRestarts  *int     `toml:"max_restarts"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "scour", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}

	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}
