// Package config defines the service configuration and how it is loaded.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8084".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "json" or "console".
	LogFormat string `koanf:"log_format"`

	// ServiceName is attached to every log line.
	ServiceName string `koanf:"service_name"`

	// DatabaseURL is the PostgreSQL connection string (URL or key=value form).
	DatabaseURL string `koanf:"database_url"`

	DB   DBConfig   `koanf:"db"`
	API  APIConfig  `koanf:"api"`
	DWR  DWRConfig  `koanf:"dwr"`
	HTTP HTTPConfig `koanf:"http"`
}

// DBConfig tunes the connection pool.
type DBConfig struct {
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	PingTimeout     time.Duration `koanf:"ping_timeout"`
}

// APIConfig shapes the HTTP API surface.
type APIConfig struct {
	// Prefix is the path every API route lives under.
	Prefix string `koanf:"prefix"`

	// MaxBodyBytes caps the size of a submitted report body.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// ExposeErrors returns the underlying failure text in 500 bodies.
	// When false the body carries a generic message and the detail is only logged.
	ExposeErrors bool `koanf:"expose_errors"`
}

// DWRConfig controls report submission.
type DWRConfig struct {
	// AtomicSubmit wraps the header and child inserts in one transaction.
	AtomicSubmit bool `koanf:"atomic_submit"`
}

// HTTPConfig holds server timeouts.
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		Addr:        ":8084",
		LogLevel:    "info",
		LogFormat:   "json",
		ServiceName: "dwr-api",
		DB: DBConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			PingTimeout:     5 * time.Second,
		},
		API: APIConfig{
			Prefix:       "/api",
			MaxBodyBytes: 1 << 20,
			ExposeErrors: true,
		},
		DWR: DWRConfig{
			AtomicSubmit: true,
		},
		HTTP: HTTPConfig{
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
	}
}
