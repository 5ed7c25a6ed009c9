package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Socket != "/tmp/commander.sock" {
		t.Errorf("socket = %q", cfg.Socket)
	}
	if cfg.MeterInterval() != 30*time.Millisecond {
		t.Errorf("meter interval = %v", cfg.MeterInterval())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.toml")
	content := "socket = \"/run/commander/backend.sock\"\nmeter_interval_ms = 50\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Socket != "/run/commander/backend.sock" {
		t.Errorf("socket = %q", cfg.Socket)
	}
	if cfg.MeterInterval() != 50*time.Millisecond {
		t.Errorf("meter interval = %v", cfg.MeterInterval())
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.toml")
	if err := os.WriteFile(path, []byte("socket = [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("COMMANDER_SOCKET", "/tmp/env.sock")
	t.Setenv("COMMANDER_LOG_PATH", "/tmp/env-logs")

	cfg := Default().ApplyEnv()
	if cfg.Socket != "/tmp/env.sock" {
		t.Errorf("socket = %q", cfg.Socket)
	}
	if cfg.LogPath != "/tmp/env-logs" {
		t.Errorf("log path = %q", cfg.LogPath)
	}
}

func TestMeterIntervalFloor(t *testing.T) {
	cfg := Config{MeterIntervalMS: -5}
	if cfg.MeterInterval() != 30*time.Millisecond {
		t.Errorf("interval = %v, want 30ms floor", cfg.MeterInterval())
	}
}
