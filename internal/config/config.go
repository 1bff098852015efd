// Package config loads application settings from a TOML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application settings.
type Config struct {
	// DataDir is where the notebook, backups and search index live.
	DataDir string `toml:"data_dir"`
	// Editor overrides $EDITOR for the external editor command.
	Editor string `toml:"editor"`
	// Preview controls the markdown preview pane.
	Preview PreviewConfig `toml:"preview"`
}

// PreviewConfig controls markdown rendering in the preview pane.
type PreviewConfig struct {
	Enabled bool   `toml:"enabled"`
	Theme   string `toml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir: defaultDataDir(),
		Preview: PreviewConfig{
			Enabled: true,
			Theme:   "dark",
		},
	}
}

// Load reads the config file at path, applies environment overrides and
// fills in defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fall through to env overrides
	case err != nil:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if dir := os.Getenv("SCRIBBLE_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}

	return cfg, nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "scribble", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "scribble", "config.toml")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "scribble")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "scribble")
}
