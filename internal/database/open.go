// Package database opens the configured store backend.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/lister/internal/config"
	"github.com/JonMunkholm/lister/internal/store"
	"github.com/JonMunkholm/lister/internal/store/postgres"
	"github.com/JonMunkholm/lister/internal/store/sqlite"
)

// Open connects to the backend named by cfg.Driver, verifies the connection
// and applies the schema. The caller closes the returned store.
func Open(ctx context.Context, cfg config.DatabaseConfig) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch strings.ToLower(cfg.Driver) {
	case config.DriverPostgres:
		st, err = openPostgres(ctx, cfg)
	case config.DriverSQLite:
		st, err = sqlite.New(cfg.SQLitePath)
		if err == nil {
			slog.Info("opened sqlite database", "path", cfg.SQLitePath)
		}
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (store.Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("connected to database", "name", databaseName(cfg.URL))
	return postgres.New(pool), nil
}

// databaseName extracts the database name from a connection URL for logging.
func databaseName(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
