package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the dashboard settings.
type Config struct {
	// APIBase is the host:port (or URL) of the stats API.
	APIBase string `koanf:"api_base"`
	// DefaultSeason is the season selected when the location names none.
	DefaultSeason string `koanf:"default_season"`
	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration `koanf:"request_timeout"`
	// RefreshInterval re-issues the current lookups periodically.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	// MetricsAddr enables a /metrics listener when set.
	MetricsAddr string `koanf:"metrics_addr"`
	// ClearOptionsOnError empties legal option sets on a failed lookup.
	ClearOptionsOnError bool `koanf:"clear_options_on_error"`
}

const (
	// EnvPrefix prefixes every environment override, e.g. PATRIOT_API_BASE.
	EnvPrefix = "PATRIOT_"
	// EnvConfigPath names the config file when no path is given.
	EnvConfigPath = "PATRIOT_CONFIG"

	defaultConfigPath      = "~/.config/patriot/config.toml"
	defaultAPIBase         = "127.0.0.1:8080"
	defaultSeason          = "2025"
	defaultRequestTimeout  = 5 * time.Second
	defaultRefreshInterval = 30 * time.Second
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBase:         defaultAPIBase,
		DefaultSeason:   defaultSeason,
		RequestTimeout:  defaultRequestTimeout,
		RefreshInterval: defaultRefreshInterval,
	}
}

// Load layers defaults, the config file and PATRIOT_* environment variables,
// lowest precedence first. A missing file is not an error.
//
// The file is path, else $PATRIOT_CONFIG, else ~/.config/patriot/config.toml.
// Files ending in .yaml or .yml are read as YAML, anything else as TOML.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	k := koanf.New(".")

	if _, err := os.Stat(resolved); err == nil {
		if err := k.Load(file.Provider(resolved), parserFor(resolved)); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: open config: %v", ErrLoadConfig, err)
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the dashboard cannot run with.
func (c Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive, got %s", ErrInvalidConfig, c.RequestTimeout)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("%w: refresh_interval must not be negative, got %s", ErrInvalidConfig, c.RefreshInterval)
	}
	return nil
}

func (c *Config) normalize() {
	c.APIBase = strings.TrimSpace(c.APIBase)
	if c.APIBase == "" {
		c.APIBase = defaultAPIBase
	}
	c.DefaultSeason = strings.TrimSpace(c.DefaultSeason)
	if c.DefaultSeason == "" {
		c.DefaultSeason = defaultSeason
	}
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return TOMLParser()
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return ExpandPath(path)
	}
	if fromEnv := strings.TrimSpace(os.Getenv(EnvConfigPath)); fromEnv != "" {
		return ExpandPath(fromEnv)
	}
	return ExpandPath(defaultConfigPath)
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
