// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080" validate:"min=1,max=65535"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s" validate:"gte=0s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s" validate:"gte=0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s" validate:"gte=0s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s" validate:"gt=0s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s" validate:"gt=0s"`
}

// SourceConfig describes the published spreadsheet export.
type SourceConfig struct {
	// URL is the published export link (required)
	// Supports both SOURCE_URL and SHEET_URL env vars
	URL string `env:"SOURCE_URL" envAlt:"SHEET_URL" required:"true" validate:"required,url"`

	// Format is the export format: csv or xlsx (default: csv)
	Format string `env:"SOURCE_FORMAT" default:"csv" validate:"oneof=csv xlsx"`

	// Grammar selects the CSV splitter: quoted or simple (default: quoted)
	Grammar string `env:"SOURCE_GRAMMAR" default:"quoted" validate:"oneof=quoted simple"`

	// Delimiter is the single-character cell separator; "tab" selects \t (default: ,)
	Delimiter string `env:"SOURCE_DELIMITER" default:","`

	// FetchTimeout bounds one fetch; 0 disables the deadline (default: 30s)
	FetchTimeout time.Duration `env:"SOURCE_FETCH_TIMEOUT" default:"30s" validate:"gte=0s"`

	// MaxBytes caps the export body size; 0 disables the limit (default: 10MB)
	MaxBytes int64 `env:"SOURCE_MAX_BYTES" default:"10485760" validate:"gte=0"`

	// RefreshInterval reloads the dataset periodically; 0 disables (default: 0s)
	RefreshInterval time.Duration `env:"SOURCE_REFRESH_INTERVAL" default:"0s" validate:"gte=0s"`

	// Schema is the registered flag schema name (default: memoon)
	Schema string `env:"SOURCE_SCHEMA" default:"memoon"`

	// SchemaFile overrides Schema with a YAML definition
	SchemaFile string `env:"SOURCE_SCHEMA_FILE"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100" validate:"gte=0"`

	// LookupLimit is requests per minute for lookup endpoints (default: 30)
	LookupLimit int `env:"RATE_LIMIT_LOOKUP" default:"30" validate:"gte=0"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey guards admin endpoints such as reload (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted X-API-Key values
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// DelimiterRune returns the configured separator. "tab" and `\t` select a
// tab; an empty value selects a comma.
func (c *SourceConfig) DelimiterRune() rune {
	switch strings.ToLower(c.Delimiter) {
	case "":
		return ','
	case "tab", `\t`:
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

func (c *SourceConfig) validDelimiter() bool {
	switch strings.ToLower(c.Delimiter) {
	case "", "tab", `\t`:
		return true
	}
	r := c.DelimiterRune()
	return utf8.RuneCountInString(c.Delimiter) == 1 && r != '"' && r != '\n' && r != '\r'
}
