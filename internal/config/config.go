// Package config loads server configuration from a YAML file, applying
// defaults for absent fields. A missing file yields the defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alekzhu/wemark/internal/yamlutil"
)

// ErrConfigParse indicates the config file could not be parsed.
var ErrConfigParse = errors.New("failed to parse config")

// Defaults applied for absent fields.
const (
	DefaultListenAddr        = ":8080"
	DefaultDataDir           = "./data"
	DefaultKeyReloadInterval = 5 * time.Minute
)

// Config holds all server configuration.
type Config struct {
	ListenAddr        string `yaml:"listenAddr"`        // HTTP listen address
	DataDir           string `yaml:"dataDir"`           // Root for the theme store
	APIKeysFile       string `yaml:"apiKeysFile"`       // One key per line; empty = dev mode
	KeyReloadInterval string `yaml:"keyReloadInterval"` // Go duration string, default 5m
	Workers           int    `yaml:"workers"`           // Renderer pool size, 0 = auto
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		ListenAddr:        DefaultListenAddr,
		DataDir:           DefaultDataDir,
		KeyReloadInterval: DefaultKeyReloadInterval.String(),
	}
}

// Load reads the config file at path. A missing file returns defaults;
// an unparseable file returns ErrConfigParse.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Default(), nil
	}

	var cfg Config
	if err := yamlutil.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	def := Default()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	if cfg.KeyReloadInterval == "" {
		cfg.KeyReloadInterval = def.KeyReloadInterval
	}

	return cfg, nil
}

// ReloadInterval parses the key reload interval, falling back to the
// default for empty or invalid values.
func (c Config) ReloadInterval() time.Duration {
	d, err := time.ParseDuration(c.KeyReloadInterval)
	if err != nil || d <= 0 {
		return DefaultKeyReloadInterval
	}
	return d
}
