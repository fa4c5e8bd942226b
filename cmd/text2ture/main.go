package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/target/text2ture/config"
	"github.com/target/text2ture/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	logger := bootstrap.InitLogger()
	err := run(ctx, logger)
	stop()
	if err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logStartupInfo(ctx, logger, &cfg)

	db, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer closeInfrastructure(logger, db, redisClient)

	if db != nil {
		if cfg.Postgres.RunMigrationsOnStart {
			if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
				return err
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
	}

	services, err := bootstrap.NewServices(bootstrap.ServiceDeps{
		Config:      &cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Observability.MetricsSink.Close(); cerr != nil {
			logger.Error("close statsd client failed", "error", cerr)
		}
	}()

	return bootstrap.Run(ctx, &cfg, services, logger)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting text2ture service",
		"addr", cfg.HTTP.Addr,
		"save_folder", cfg.Storage.SaveFolder,
		"workers", cfg.Executor.Workers,
		"queue_size", cfg.Executor.QueueSize,
		"fal_api_key_configured", cfg.Transcriber.IsConfigured(),
		"dev", cfg.IsDev,
		"backends", bootstrap.EnabledBackends(cfg))
}

// initInfrastructure connects the optional backing services. Either return value may be nil.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	backing := bootstrap.BackingConfig{
		Postgres: cfg.Postgres,
		Redis:    cfg.Redis,
		Logger:   logger,
	}

	db, err := bootstrap.ConnectDB(ctx, backing)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}

	redisClient, err := bootstrap.ConnectRedis(ctx, backing)
	if err != nil {
		closeInfrastructure(logger, db, nil)
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return db, redisClient, nil
}

func closeInfrastructure(logger *slog.Logger, db *sql.DB, redisClient redis.UniversalClient) {
	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("close database failed", "error", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis failed", "error", err)
		}
	}
}
