package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the optional renum configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Theme    ThemeConfig    `toml:"theme"`
}

// DefaultsConfig holds persistent flag defaults.
type DefaultsConfig struct {
	Verbose     *bool   `toml:"verbose"`
	NoProgress  *bool   `toml:"no-progress"`
	TUI         *bool   `toml:"tui"`
	StagePrefix *string `toml:"stage-prefix"`
}

// ThemeConfig holds optional color overrides for the TUI.
type ThemeConfig struct {
	Green  *string `toml:"green"`
	Red    *string `toml:"red"`
	Yellow *string `toml:"yellow"`
	Muted  *string `toml:"muted"`
	Bright *string `toml:"bright"`
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
	return filepath.Join(dir, "renum", "config.toml")
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
