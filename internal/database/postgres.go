// Package database opens the PostgreSQL pool.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dwr-api/internal/config"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL using dsn and verifies the connection.
func Open(ctx context.Context, dsn string, cfg config.DBConfig) (*sql.DB, error) {
	return open(ctx, "postgres", dsn, cfg)
}

func open(ctx context.Context, driver, dsn string, cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
