// Package db opens the postgres pool backing the catalog and user tables.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"agrimart-be/internal/config"
	"agrimart-be/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	driverName  = "postgres"
	pingTimeout = 5 * time.Second

	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// buildDSN renders cfg as a lib/pq key/value DSN. Values are single-quoted
// so passwords with spaces survive.
func buildDSN(cfg *config.Config) string {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	pairs := []struct{ key, val string }{
		{"host", cfg.DBHost},
		{"port", cfg.DBPort},
		{"user", cfg.DBUser},
		{"password", cfg.DBPassword},
		{"dbname", cfg.DBName},
		{"sslmode", sslMode},
	}

	var b strings.Builder
	for _, p := range pairs {
		if p.val == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%s", p.key, quoteDSN(p.val))
	}
	return b.String()
}

func quoteDSN(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// NewDatabase opens the pool described by cfg and pings it before returning.
func NewDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	return openWithDriver(ctx, driverName, buildDSN(cfg))
}

func openWithDriver(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.FromCtx(ctx).Info("database connection established",
		zap.Int("max_open_conns", maxOpenConns),
	)
	return db, nil
}
