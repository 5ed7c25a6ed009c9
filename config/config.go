// Package config loads the client-side configuration: where the backend
// socket lives and how the terminal UI behaves. Backend settings (language,
// shortcut, models, ...) are owned by the backend and never touch this file.
//
// Precedence per field: command-line flag > COMMANDER_* environment
// variable > config file > built-in default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"

	"commander/bridge"
)

type Config struct {
	Socket          string `toml:"socket"`
	LogPath         string `toml:"log_path"`
	MeterIntervalMS int    `toml:"meter_interval_ms"`
}

func Default() Config {
	return Config{
		Socket:          bridge.DefaultSocketPath,
		MeterIntervalMS: 30,
	}
}

func (c Config) MeterInterval() time.Duration {
	if c.MeterIntervalMS <= 0 {
		return 30 * time.Millisecond
	}
	return time.Duration(c.MeterIntervalMS) * time.Millisecond
}

// Path returns the default config file location (client.toml next to the
// backend's own config directory).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "commander", "client.toml"), nil
	}
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "commander", "client.toml"), nil
}

// Load reads the config file, filling unset fields with defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Socket == "" {
		cfg.Socket = bridge.DefaultSocketPath
	}
	return cfg, nil
}

// ApplyEnv overlays COMMANDER_* environment variables.
func (c Config) ApplyEnv() Config {
	if v := os.Getenv("COMMANDER_SOCKET"); v != "" {
		c.Socket = v
	}
	if v := os.Getenv("COMMANDER_LOG_PATH"); v != "" {
		c.LogPath = v
	}
	return c
}
