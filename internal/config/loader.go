package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "DWR_"

	// envConfigPath names the optional YAML file.
	envConfigPath = "DWR_CONFIG"

	// legacyDatabaseURL is read when DWR_DATABASE_URL is not set.
	legacyDatabaseURL = "NETLIFY_DATABASE_URL"
)

// Load builds a Config by layering defaults, an optional YAML file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if DWR_CONFIG is set
//  3. env (prefix DWR_, "__" separates nested keys: DWR_DB__MAX_OPEN_CONNS)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(envConfigPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envKey)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv(legacyDatabaseURL)
	}
	cfg.API.Prefix = "/" + strings.Trim(cfg.API.Prefix, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first missing required value.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DatabaseURL == "":
		return fmt.Errorf("%w: database_url must not be empty", ErrInvalidConfig)
	case c.API.Prefix == "" || c.API.Prefix == "/":
		return fmt.Errorf("%w: api.prefix must not be empty", ErrInvalidConfig)
	case c.API.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: api.max_body_bytes must be positive", ErrInvalidConfig)
	}
	return nil
}

// envKey maps DWR_DB__MAX_OPEN_CONNS to db.max_open_conns.
func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}
