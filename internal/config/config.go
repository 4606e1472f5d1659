// ABOUTME: Configuration management for snapgram with YAML config loading.
// ABOUTME: Handles storage path, playback timing, logging, .env overrides, and ~ expansion.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvDBPath   = "SNAPGRAM_DB_PATH"
	EnvLogLevel = "SNAPGRAM_LOG_LEVEL"
)

const (
	defaultItemDuration = 5 * time.Second
	defaultTickInterval = 50 * time.Millisecond
	defaultLogLevel     = "warn"
)

// Config stores snapgram configuration loaded from ~/.config/snapgram/config.yaml.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Playback PlaybackConfig `yaml:"playback"`
	Log      LogConfig      `yaml:"log"`
}

// StorageConfig locates the SQLite database file.
type StorageConfig struct {
	Path string `yaml:"path,omitempty"`
}

// PlaybackConfig holds story timer settings.
type PlaybackConfig struct {
	ItemDuration time.Duration `yaml:"item_duration,omitempty"`
	TickInterval time.Duration `yaml:"tick_interval,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	JSON  bool   `yaml:"json,omitempty"`
}

// GetDBPath returns the database path, defaulting to snapgram.db in the data directory.
func (c *Config) GetDBPath() (string, error) {
	if c.Storage.Path != "" {
		return ExpandPath(c.Storage.Path)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "snapgram.db"), nil
}

// ItemDuration returns how long a story item plays.
func (c *Config) ItemDuration() time.Duration {
	if c.Playback.ItemDuration > 0 {
		return c.Playback.ItemDuration
	}
	return defaultItemDuration
}

// TickInterval returns the story progress timer period.
func (c *Config) TickInterval() time.Duration {
	if c.Playback.TickInterval > 0 {
		return c.Playback.TickInterval
	}
	return defaultTickInterval
}

// LogLevel returns the configured log level, defaulting to warn.
func (c *Config) LogLevel() string {
	if c.Log.Level != "" {
		return c.Log.Level
	}
	return defaultLogLevel
}

// ApplyEnv overlays environment overrides onto the loaded file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// DataDir returns the default snapgram data directory.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "snapgram"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "snapgram", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// LoadDotEnv loads variables from the given .env files into the environment.
// Missing files are ignored and variables already set are kept.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads config from disk and applies environment overrides.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
