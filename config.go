package pesto

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the optional per-project host configuration, looked up
// in the script directory.
const configFile = "pesto.yml"

// Config controls the host window and debug presentation. Scripts always
// render at the fixed virtual resolution regardless of these values.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Debug  bool   `yaml:"debug"`
}

// DefaultConfig returns the stock window configuration.
func DefaultConfig() Config {
	return Config{
		Title:  "Pesto",
		Width:  960,
		Height: 540,
	}
}

// LoadConfig reads <dir>/pesto.yml when present. A missing file yields
// the defaults; a malformed file is an error (a project that ships a
// config wants it honored, not silently dropped). Omitted fields fall
// back to their defaults.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", configFile, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", configFile, err)
	}

	if cfg.Title == "" {
		cfg.Title = DefaultConfig().Title
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultConfig().Width
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultConfig().Height
	}
	return cfg, nil
}
