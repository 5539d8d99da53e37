// Package config loads the scanner's YAML configuration. Every field has
// a working default so the binary runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Cache    CacheConfig    `yaml:"cache"`
	Scan     ScanConfig     `yaml:"scan"`
	Universe UniverseConfig `yaml:"universe"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP interface.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_sec"`
}

// ProviderConfig configures the upstream data provider.
type ProviderConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	Period            string  `yaml:"period"`
}

// CacheConfig selects the cache backend and freshness windows.
type CacheConfig struct {
	PriceTTLSec        int `yaml:"price_ttl_sec"`
	FundamentalsTTLSec int `yaml:"fundamentals_ttl_sec"`
	MaxEntries         int `yaml:"max_entries"`
	Redis              struct {
		Addr      string `yaml:"addr"`
		DB        int    `yaml:"db"`
		KeyPrefix string `yaml:"key_prefix"`
	} `yaml:"redis"`
}

// PriceTTL returns the price entry freshness window.
func (c CacheConfig) PriceTTL() time.Duration {
	return time.Duration(c.PriceTTLSec) * time.Second
}

// FundamentalsTTL returns the fundamentals entry freshness window.
func (c CacheConfig) FundamentalsTTL() time.Duration {
	return time.Duration(c.FundamentalsTTLSec) * time.Second
}

// ScanConfig bounds scan fan-out.
type ScanConfig struct {
	Workers          int `yaml:"workers"`
	SymbolTimeoutSec int `yaml:"symbol_timeout_sec"`
}

// SymbolTimeout returns the per-symbol fetch+evaluate budget.
func (c ScanConfig) SymbolTimeout() time.Duration {
	return time.Duration(c.SymbolTimeoutSec) * time.Second
}

// UniverseConfig points at an optional symbol list override.
type UniverseConfig struct {
	File string `yaml:"file"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 120,
			ShutdownSec:     10,
		},
		Provider: ProviderConfig{
			RequestsPerSecond: 5,
			Burst:             10,
			Period:            "1y",
		},
		Cache: CacheConfig{
			PriceTTLSec:        300,
			FundamentalsTTLSec: 3600,
			MaxEntries:         1000,
		},
		Scan: ScanConfig{
			Workers:          8,
			SymbolTimeoutSec: 30,
		},
		Logging: LoggingConfig{Level: "info"},
	}
	return cfg
}

// Load reads path over the defaults. An empty path returns the defaults
// unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot run.
func (c *Config) Validate() error {
	if c.Provider.RequestsPerSecond <= 0 {
		return fmt.Errorf("config: provider.requests_per_second must be positive")
	}
	if c.Scan.Workers <= 0 {
		return fmt.Errorf("config: scan.workers must be positive")
	}
	if c.Cache.PriceTTLSec <= 0 || c.Cache.FundamentalsTTLSec <= 0 {
		return fmt.Errorf("config: cache TTLs must be positive")
	}
	return nil
}
