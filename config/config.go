package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/candlescope/binance"
	"github.com/rustyeddy/candlescope/market"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvAPIKey    = "CANDLESCOPE_API_KEY"
	EnvAPISecret = "CANDLESCOPE_API_SECRET"
	EnvBaseURL   = "CANDLESCOPE_BASE_URL"
)

// Config represents the complete dashboard configuration
type Config struct {
	Exchange ExchangeConfig `json:"exchange" yaml:"exchange"`
	Chart    ChartConfig    `json:"chart" yaml:"chart"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// ExchangeConfig selects the venue and credentials
type ExchangeConfig struct {
	BaseURL   string `json:"base_url" yaml:"base_url"`
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APISecret string `json:"api_secret,omitempty" yaml:"api_secret,omitempty"`
}

// ChartConfig holds the default selection
type ChartConfig struct {
	Symbol    string `json:"symbol" yaml:"symbol"`
	Timeframe string `json:"timeframe" yaml:"timeframe"`
	Limit     int    `json:"limit" yaml:"limit"`
}

// ServerConfig contains HTTP server parameters
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// JournalConfig contains request journaling parameters
type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug|info|warn|error
}

// Load returns Default() when path is empty, otherwise the file at path.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromFile(path)
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Missing files are ignored and variables
// already set are left alone.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides exchange settings from the environment and trims
// surrounding whitespace from the credentials.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvAPIKey); ok {
		c.Exchange.APIKey = v
	}
	if v, ok := os.LookupEnv(EnvAPISecret); ok {
		c.Exchange.APISecret = v
	}
	if v, ok := os.LookupEnv(EnvBaseURL); ok && v != "" {
		c.Exchange.BaseURL = v
	}
	c.Exchange.APIKey = strings.TrimSpace(c.Exchange.APIKey)
	c.Exchange.APISecret = strings.TrimSpace(c.Exchange.APISecret)
	c.Exchange.BaseURL = strings.TrimSpace(c.Exchange.BaseURL)
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Exchange.BaseURL == "" {
		return fmt.Errorf("exchange.base_url is required")
	}
	if u, err := url.Parse(c.Exchange.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("exchange.base_url must be an absolute URL, got %q", c.Exchange.BaseURL)
	}
	if (c.Exchange.APIKey == "") != (c.Exchange.APISecret == "") {
		return fmt.Errorf("exchange.api_key and exchange.api_secret must be set together")
	}
	if err := c.Request().Validate(); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Journal.Enabled && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required when journal is enabled")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug|info|warn|error")
	}
	return nil
}

// Request returns the configured default chart selection.
func (c *Config) Request() market.Request {
	return market.Request{
		Symbol:    c.Chart.Symbol,
		Timeframe: c.Chart.Timeframe,
		Limit:     c.Chart.Limit,
	}
}

// Binance returns the client configuration for the exchange section.
func (c *Config) Binance() binance.Config {
	return binance.Config{
		BaseURL:   c.Exchange.BaseURL,
		APIKey:    c.Exchange.APIKey,
		APISecret: c.Exchange.APISecret,
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Exchange: ExchangeConfig{
			BaseURL: binance.DefaultBaseURL,
		},
		Chart: ChartConfig{
			Symbol:    "BTC/USDT",
			Timeframe: "1h",
			Limit:     market.DefaultLimit,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Journal: JournalConfig{
			Enabled: false,
			DBPath:  "./candlescope.sqlite",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
