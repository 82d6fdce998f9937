package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PoolConfig struct {
	MaxConns          int
	MinConns          int
	HealthCheckPeriod time.Duration
	ConnectTimeout    time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
	ApplicationName   string
}

// DefaultPoolConfig рассчитан на один процесс API и два фоновых цикла.
func DefaultPoolConfig(appName string) PoolConfig {
	return PoolConfig{
		MaxConns:          20,
		MinConns:          2,
		HealthCheckPeriod: 30 * time.Second,
		ConnectTimeout:    5 * time.Second,
		RetryAttempts:     5,
		RetryDelay:        time.Second,
		ApplicationName:   appName,
	}
}

func NewPool(ctx context.Context, dsn string, cfg PoolConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось распарсить DSN: %w", err)
	}

	conf.MaxConns = int32(cfg.MaxConns)
	conf.MinConns = int32(cfg.MinConns)
	conf.HealthCheckPeriod = cfg.HealthCheckPeriod
	conf.MaxConnLifetime = 30 * time.Minute
	conf.MaxConnIdleTime = 5 * time.Minute
	if cfg.ApplicationName != "" {
		conf.ConnConfig.RuntimeParams["application_name"] = cfg.ApplicationName
	}
	conf.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	var pool *pgxpool.Pool
	for i := 0; i < cfg.RetryAttempts; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, conf)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Info("подключение к базе данных успешно",
					slog.String("application_name", cfg.ApplicationName))
				return pool, nil
			}
			pool.Close()
		}

		log.Warn("не удалось подключиться к БД",
			slog.Int("attempt", i+1),
			slog.Int("max_attempts", cfg.RetryAttempts),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay * time.Duration(1<<i)):
		}
	}

	return nil, fmt.Errorf("не удалось создать пул соединений после %d попыток: %w", cfg.RetryAttempts, err)
}
