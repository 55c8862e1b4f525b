package store

import (
	"fmt"
	"log/slog"
	"strings"
)

// Opts holds configuration options for building a session store.
type Opts struct {
	// Driver selects the backend: "memory", "sqlite3", or "postgres".
	// Empty defaults to "memory"; a DSN with a postgres scheme implies
	// "postgres", any other non-empty DSN implies "sqlite3".
	Driver string
	// DSN is the backend connection string: a file path for SQLite, a
	// connection URL for Postgres.
	DSN string
}

// Option defines a configuration option for session stores.
type Option func(*Opts)

// WithDriver selects the store backend explicitly.
func WithDriver(driver string) Option {
	return func(o *Opts) { o.Driver = driver }
}

// WithDSN sets the backend connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// New builds a session store from the provided options, inferring the
// backend from the DSN when no driver is named.
func New(opts ...Option) (Store, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}

	driver := cfg.Driver
	if driver == "" {
		switch {
		case cfg.DSN == "":
			driver = "memory"
		case strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://"):
			driver = "postgres"
		default:
			driver = "sqlite3"
		}
	}
	slog.Debug("store.New: selected backend", "driver", driver, "dsn_set", cfg.DSN != "")

	switch driver {
	case "memory":
		return NewInMemoryStore(), nil
	case "sqlite3":
		return NewSQLiteStore(WithDSN(cfg.DSN))
	case "postgres":
		return NewPostgresStore(WithDSN(cfg.DSN))
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}
