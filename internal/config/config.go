// Package config manages the TOML configuration file under the per-user
// config directory. Missing or partial files fall back to defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"texoxide/internal/appdirs"
	"texoxide/internal/ui"

	toml "github.com/pelletier/go-toml/v2"
)

// maxQueryResults mirrors the store's result cap; configuring more would
// silently do nothing.
const maxQueryResults = 20

type UIConfig struct {
	Backend string `toml:"backend" json:"backend"`
}

type QueryConfig struct {
	MaxResults int `toml:"max_results" json:"max_results"`
}

type Config struct {
	Version int         `toml:"version" json:"version"`
	Editor  string      `toml:"editor" json:"editor"`
	UI      UIConfig    `toml:"ui" json:"ui"`
	Query   QueryConfig `toml:"query" json:"query"`
}

func Default() Config {
	return Config{
		Version: 1,
		Editor:  "",
		UI: UIConfig{
			Backend: ui.BackendBubbleTea,
		},
		Query: QueryConfig{
			MaxResults: 20,
		},
	}
}

func LoadOrCreate() (Config, string, error) {
	path, err := appdirs.ConfigFilePath()
	if err != nil {
		return Config{}, "", err
	}

	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, err := appdirs.EnsureConfigDir(); err != nil {
			return Config{}, "", err
		}
		if err := Save(path, cfg); err != nil {
			return Config{}, "", err
		}
		return cfg, path, nil
	}
	if err != nil {
		return Config{}, "", fmt.Errorf("could not stat config path: %w", err)
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, "", fmt.Errorf("could not read config file: %w", err)
	}

	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, "", fmt.Errorf("could not parse config file: %w", err)
	}
	cfg.normalize()
	return cfg, path, nil
}

func Save(path string, cfg Config) error {
	cfg.normalize()
	payload, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not serialize config: %w", err)
	}
	if _, err := appdirs.EnsureConfigDir(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".texoxide-config-*.toml")
	if err != nil {
		return fmt.Errorf("could not create temp config file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp config file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp config file permissions: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp config file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not atomically replace config file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("could not secure config file permissions: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	defaults := Default()
	if c.Version == 0 {
		c.Version = defaults.Version
	}
	c.Editor = strings.TrimSpace(c.Editor)
	c.UI.Backend = ui.NormalizeBackend(c.UI.Backend)
	if c.Query.MaxResults <= 0 || c.Query.MaxResults > maxQueryResults {
		c.Query.MaxResults = defaults.Query.MaxResults
	}
}

func (c *Config) Set(key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)

	switch key {
	case "editor":
		c.Editor = value
	case "ui.backend":
		normalized := ui.NormalizeBackend(value)
		if normalized == ui.BackendAuto && value != "" && !strings.EqualFold(value, ui.BackendAuto) {
			return fmt.Errorf("ui.backend must be one of auto|bubbletea|huh|tview|plain")
		}
		c.UI.Backend = normalized
	case "query.max_results":
		count, err := strconv.Atoi(value)
		if err != nil || count <= 0 || count > maxQueryResults {
			return fmt.Errorf("query.max_results must be an integer between 1 and %d", maxQueryResults)
		}
		c.Query.MaxResults = count
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	c.normalize()
	return nil
}
