package postgres

import (
	"context"
	"customer-service/internal/config"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns          int32 = 10
	defaultMaxConnIdleTime         = 5 * time.Minute
	defaultHealthCheckPeriod       = time.Minute
	defaultConnectTimeout          = 5 * time.Second
)

// NewConnectionPool opens the customer store pool and fails unless the
// database answers a ping within the connect timeout.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is empty in configuration")
	}

	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}

	logger = logger.With(
		slog.String("component", "postgres"),
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("db", poolConfig.ConnConfig.Database),
	)
	logger.InfoContext(ctx, "Opening customer store connection pool",
		slog.Int("maxConns", int(poolConfig.MaxConns)),
		slog.Int("minConns", int(poolConfig.MinConns)),
		slog.Duration("maxConnLifetime", poolConfig.MaxConnLifetime),
		slog.Duration("maxConnIdleTime", poolConfig.MaxConnIdleTime),
	)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := verifyConnection(ctx, pool, connectTimeout(cfg), logger); err != nil {
		pool.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "Customer store connection pool ready")
	return pool, nil
}

// configurePool overlays the configured pool limits on the URL settings.
// Zero values keep the defaults; MinConns is capped at MaxConns.
func configurePool(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	poolConfig.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = min(cfg.MinConns, poolConfig.MaxConns)
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}

	poolConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	poolConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout(cfg)

	return poolConfig, nil
}

func connectTimeout(cfg config.DatabaseConfig) time.Duration {
	if cfg.ConnectTimeout > 0 {
		return cfg.ConnectTimeout
	}
	return defaultConnectTimeout
}

func verifyConnection(ctx context.Context, db DBPool, timeout time.Duration, logger *slog.Logger) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := db.Ping(pingCtx)
	observeQuery("ping", start, err)
	if err != nil {
		logger.ErrorContext(ctx, "Customer store did not answer ping", slog.Duration("timeout", timeout), slog.Any("error", err))
		return fmt.Errorf("failed to ping database on connect: %w", err)
	}
	return nil
}
