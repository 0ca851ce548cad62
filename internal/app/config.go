package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configFilename = "config.yaml"
	envFilename    = ".env"
	envPrefix      = "KEYSTONE_"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home        string  // config directory, e.g. $HOME/.keystone
	ServerURL   string  // server new identities are bound to
	LogLevel    string  // debug, info, warn or error
	LogFormat   string  // json or text
	Workers     int     // batch pool size; 0 means one per CPU
	MetricsAddr string  // listen address for /metrics during batch runs
	UnlockRate  float64 // unlock attempts per second
	UnlockBurst int
}

// DefaultConfig returns the built-in defaults for home.
func DefaultConfig(home string) Config {
	return Config{
		Home:        home,
		ServerURL:   "https://server.keystone.dev",
		LogLevel:    "info",
		LogFormat:   "text",
		UnlockRate:  1,
		UnlockBurst: 5,
	}
}

// fileConfig mirrors config.yaml. Zero values leave the default in place.
type fileConfig struct {
	ServerURL string `yaml:"serverURL"`
	Log       struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Batch struct {
		Workers     int    `yaml:"workers"`
		MetricsAddr string `yaml:"metricsAddr"`
	} `yaml:"batch"`
	Unlock struct {
		Rate  float64 `yaml:"rate"`
		Burst int     `yaml:"burst"`
	} `yaml:"unlock"`
}

// LoadConfig builds the configuration for home: defaults, then
// home/config.yaml, then home/.env, then KEYSTONE_* environment variables.
// Missing files are skipped.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig(home)

	data, err := os.ReadFile(filepath.Join(home, configFilename))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, err
	default:
		var parsed fileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", configFilename, err)
		}
		merge(&cfg, parsed)
	}

	dotenv, err := godotenv.Read(filepath.Join(home, envFilename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("parse %s: %w", envFilename, err)
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}
	if err := applyEnvOverrides(&cfg, lookup); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func merge(dst *Config, src fileConfig) {
	if src.ServerURL != "" {
		dst.ServerURL = src.ServerURL
	}
	if src.Log.Level != "" {
		dst.LogLevel = src.Log.Level
	}
	if src.Log.Format != "" {
		dst.LogFormat = src.Log.Format
	}
	if src.Batch.Workers != 0 {
		dst.Workers = src.Batch.Workers
	}
	if src.Batch.MetricsAddr != "" {
		dst.MetricsAddr = src.Batch.MetricsAddr
	}
	if src.Unlock.Rate != 0 {
		dst.UnlockRate = src.Unlock.Rate
	}
	if src.Unlock.Burst != 0 {
		dst.UnlockBurst = src.Unlock.Burst
	}
}

func applyEnvOverrides(cfg *Config, lookup func(string) string) error {
	if v := lookup(envPrefix + "SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := lookup(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := lookup(envPrefix + "LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := lookup(envPrefix + "METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := lookup(envPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", envPrefix, err)
		}
		cfg.Workers = n
	}
	if v := lookup(envPrefix + "UNLOCK_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sUNLOCK_RATE: %w", envPrefix, err)
		}
		cfg.UnlockRate = f
	}
	if v := lookup(envPrefix + "UNLOCK_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sUNLOCK_BURST: %w", envPrefix, err)
		}
		cfg.UnlockBurst = n
	}
	return nil
}

// Validate reports configuration values that cannot work.
func (c Config) Validate() error {
	if c.Home == "" {
		return errors.New("config: home directory not set")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: negative worker count %d", c.Workers)
	}
	if c.UnlockRate <= 0 || c.UnlockBurst < 1 {
		return fmt.Errorf("config: unlock limit must be positive (rate %g, burst %d)", c.UnlockRate, c.UnlockBurst)
	}
	return nil
}
