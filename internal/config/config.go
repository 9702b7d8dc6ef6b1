// Package config loads per-service configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// HTTP configures the listen address and CORS policy.
type HTTP struct {
	Addr            string   `yaml:"addr"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	ShutdownTimeout int      `yaml:"shutdown_timeout_seconds"`
}

// Database configures the relational store. An empty URL selects the
// in-memory store.
type Database struct {
	URL string `yaml:"url"`
}

// RateLimit configures the per-client request budget.
type RateLimit struct {
	RequestsPerSecond int `yaml:"requests_per_second"`
	Burst             int `yaml:"burst"`
}

// Auth configures bearer-token verification against an identity provider.
type Auth struct {
	Issuer                 string `yaml:"issuer"`
	Audience               string `yaml:"audience"`
	JWKSURL                string `yaml:"jwks_url"`
	RefreshIntervalSeconds int    `yaml:"refresh_interval_seconds"`
	LeewaySeconds          int    `yaml:"leeway_seconds"`
}

// RefreshInterval returns the JWKS refresh interval.
func (a Auth) RefreshInterval() time.Duration {
	if a.RefreshIntervalSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(a.RefreshIntervalSeconds) * time.Second
}

// Leeway returns the clock-skew tolerance for token validation.
func (a Auth) Leeway() time.Duration {
	return time.Duration(a.LeewaySeconds) * time.Second
}

// Config is the full configuration for one service process.
type Config struct {
	Service   string    `yaml:"service"`
	LogLevel  string    `yaml:"log_level"`
	LogFormat string    `yaml:"log_format"`
	HTTP      HTTP      `yaml:"http"`
	Database  Database  `yaml:"database"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Auth      Auth      `yaml:"auth"`
}

// Load reads the configuration from path and applies environment overrides.
func Load(path, service string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default(service)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()

	if cfg.HTTP.Addr == "" {
		return nil, fmt.Errorf("service %s: http addr is required", cfg.Service)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from path, falling back to defaults plus
// environment overrides when the file does not exist.
func LoadOrDefault(path, service string) *Config {
	cfg, err := Load(path, service)
	if err != nil {
		cfg = Default(service)
		cfg.applyEnv()
	}
	return cfg
}

// Default returns the default configuration for the named service.
func Default(service string) *Config {
	cfg := &Config{
		Service:   service,
		LogLevel:  "info",
		LogFormat: "json",
		HTTP: HTTP{
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10,
		},
		RateLimit: RateLimit{RequestsPerSecond: 50, Burst: 100},
	}

	switch service {
	case "encore":
		cfg.HTTP.Addr = ":8081"
	case "trivia":
		cfg.HTTP.Addr = ":8082"
	case "coffeeshop":
		cfg.HTTP.Addr = ":8083"
	default:
		cfg.HTTP.Addr = ":8080"
	}
	return cfg
}

// applyEnv overrides configuration from the process environment. The prefix
// is the upper-cased service name, e.g. TRIVIA_DATABASE_URL.
func (c *Config) applyEnv() {
	prefix := strings.ToUpper(c.Service) + "_"

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(prefix + key); ok {
			return v, true
		}
		return os.LookupEnv(key)
	}

	if v, ok := lookup("ADDR"); ok {
		c.HTTP.Addr = v
	}
	if v, ok := lookup("PORT"); ok {
		c.HTTP.Addr = ":" + v
	}
	if v, ok := lookup("DATABASE_URL"); ok {
		c.Database.URL = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok {
		c.HTTP.AllowedOrigins = strings.Split(v, ",")
	}
	if v, ok := lookup("RATE_LIMIT_RPS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateLimit.RequestsPerSecond = n
		}
	}
	if v, ok := lookup("AUTH_ISSUER"); ok {
		c.Auth.Issuer = v
	}
	if v, ok := lookup("AUTH_AUDIENCE"); ok {
		c.Auth.Audience = v
	}
	if v, ok := lookup("AUTH_JWKS_URL"); ok {
		c.Auth.JWKSURL = v
	}
}
