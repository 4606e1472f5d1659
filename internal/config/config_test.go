// ABOUTME: Tests for snapgram configuration loading and path expansion.
// ABOUTME: Covers YAML parsing, defaults, environment overrides, and .env loading.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := cfg.ItemDuration(); got != 5*time.Second {
		t.Errorf("ItemDuration() = %v, want 5s", got)
	}
	if got := cfg.TickInterval(); got != 50*time.Millisecond {
		t.Errorf("TickInterval() = %v, want 50ms", got)
	}
	if got := cfg.LogLevel(); got != "warn" {
		t.Errorf("LogLevel() = %q, want warn", got)
	}
	if cfg.Log.JSON {
		t.Error("expected console logging by default")
	}

	dbPath, err := cfg.GetDBPath()
	if err != nil {
		t.Fatalf("GetDBPath() error: %v", err)
	}
	if want := filepath.Join(dataHome, "snapgram", "snapgram.db"); dbPath != want {
		t.Errorf("GetDBPath() = %q, want %q", dbPath, want)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")

	configDir := filepath.Join(tmpDir, "snapgram")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configData := `storage:
  path: "~/photos/snapgram.db"
playback:
  item_duration: 3s
  tick_interval: 100ms
log:
  level: debug
  json: true
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configData), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := cfg.ItemDuration(); got != 3*time.Second {
		t.Errorf("ItemDuration() = %v, want 3s", got)
	}
	if got := cfg.TickInterval(); got != 100*time.Millisecond {
		t.Errorf("TickInterval() = %v, want 100ms", got)
	}
	if cfg.LogLevel() != "debug" || !cfg.Log.JSON {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, "photos", "snapgram.db")
	if got, err := cfg.GetDBPath(); err != nil {
		t.Fatalf("GetDBPath() error: %v", err)
	} else if got != want {
		t.Errorf("GetDBPath() = %q, want %q", got, want)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "snapgram")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("playback:\n  item_duration: soon\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvDBPath, "/tmp/override.db")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, _ := cfg.GetDBPath(); got != "/tmp/override.db" {
		t.Errorf("GetDBPath() = %q, want /tmp/override.db", got)
	}
	if got := cfg.LogLevel(); got != "error" {
		t.Errorf("LogLevel() = %q, want error", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(EnvLogLevel+"=debug\n"), 0600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), envFile); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv(EnvLogLevel); got != "debug" {
		t.Errorf("%s = %q, want debug", EnvLogLevel, got)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")

	cfg := &Config{
		Storage:  StorageConfig{Path: "/data/snapgram.db"},
		Playback: PlaybackConfig{ItemDuration: 7 * time.Second},
		Log:      LogConfig{Level: "info"},
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Storage.Path != "/data/snapgram.db" {
		t.Errorf("expected storage path '/data/snapgram.db', got %q", loaded.Storage.Path)
	}
	if loaded.ItemDuration() != 7*time.Second {
		t.Errorf("expected item duration 7s, got %v", loaded.ItemDuration())
	}
	if loaded.TickInterval() != 50*time.Millisecond {
		t.Errorf("expected default tick interval, got %v", loaded.TickInterval())
	}
	if loaded.LogLevel() != "info" {
		t.Errorf("expected log level 'info', got %q", loaded.LogLevel())
	}

	path, _ := GetConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}
}
