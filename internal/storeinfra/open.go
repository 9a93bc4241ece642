package storeinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// Open validates cfg, opens the database/sql pool and wraps it in a bun handle
// using the dialect that matches the driver.
//
// The caller owns the returned handle and must Close it.
func Open(ctx context.Context, cfg Config) (*bun.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sqldb, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		sqldb.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	if cfg.PingTimeout > 0 {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
		if err := sqldb.PingContext(pingCtx); err != nil {
			_ = sqldb.Close()
			return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
		}
	}

	return bun.NewDB(sqldb, dialectFor(cfg.Driver)), nil
}

func dialectFor(driver string) schema.Dialect {
	if driver == DriverPostgres {
		return pgdialect.New()
	}
	return sqlitedialect.New()
}
