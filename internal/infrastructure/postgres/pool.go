package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/config"
)

const pingTimeout = 5 * time.Second

// Open migrates the audit schema and returns a verified pool. Callers treat an
// error as "audit disabled" rather than fatal.
func Open(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*pgxpool.Pool, error) {
	if err := RunMigrations(cfg.AuditDatabaseURL, cfg.MigrationsDir, logger); err != nil {
		return nil, fmt.Errorf("audit migrations: %w", err)
	}
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("audit pool: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("audit ping: %w", err)
	}
	logger.WithFields(logrus.Fields{"max_conns": pc.MaxConns, "min_conns": pc.MinConns}).Info("audit store connected")
	return pool, nil
}

func poolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.AuditDatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse audit dsn: %w", err)
	}
	if cfg.AuditMaxConns > 0 {
		pc.MaxConns = cfg.AuditMaxConns
	}
	if cfg.AuditMinConns >= 0 && cfg.AuditMinConns <= pc.MaxConns {
		pc.MinConns = cfg.AuditMinConns
	}
	pc.MaxConnLifetime = cfg.AuditMaxConnLife
	pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	return pc, nil
}
