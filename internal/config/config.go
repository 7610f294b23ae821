package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	defaultBaseURL    = "http://localhost:8000"
	defaultTimeoutSec = 30
)

// APIConfig holds backend connection settings.
type APIConfig struct {
	// BaseURL is the root URL of the DriftMirror backend.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds every request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// CacheConfig controls the local snapshot cache.
type CacheConfig struct {
	// Enabled turns the offline snapshot cache on or off.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Path overrides the default cache database location.
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Config is the top-level application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultPath returns the default path for the configuration file,
// located at ~/.config/driftmirror/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "driftmirror", "config.yaml")
}

// DefaultCachePath returns the default snapshot database location,
// ~/.local/state/driftmirror/cache.db.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cache.db")
	}
	return filepath.Join(home, ".local", "state", "driftmirror", "cache.db")
}

// DefaultLogDir returns the directory rotated log files are written to.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state", "driftmirror")
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    defaultBaseURL,
			TimeoutSec: defaultTimeoutSec,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    DefaultCachePath(),
		},
		Display: DisplayConfig{Theme: "default"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads configuration from the given YAML file path using Viper.
// A missing file yields the defaults. On a malformed file the returned
// config still carries the defaults next to the error, so callers like
// `doctor` can keep going and report the problem. The DRIFTMIRROR_API_URL
// environment variable overrides api.base_url either way.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("api.base_url", defaultBaseURL)
	v.SetDefault("api.timeout_sec", defaultTimeoutSec)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", DefaultCachePath())
	v.SetDefault("display.theme", "default")
	v.SetDefault("log.level", "info")

	cfg := defaultConfig()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return applyEnv(cfg), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return applyEnv(cfg), nil
		}
		return applyEnv(defaultConfig()), fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return applyEnv(defaultConfig()), fmt.Errorf("parsing config %s: %w", path, err)
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg *Config) *Config {
	if url := os.Getenv("DRIFTMIRROR_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	return cfg
}

// Save writes the given configuration to a YAML file at path, creating
// parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("cache", cfg.Cache)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
