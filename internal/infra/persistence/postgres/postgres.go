// Package postgres is the relational storage backend: GORM over go-lib's connection
// pool, goose migrations embedded in the binary.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"academy/config"
	"academy/internal/domain/lifecycle"
	"academy/internal/errors"
	"academy/internal/infra/metrics"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolCheckInterval = 5 * time.Second
	poolWaitWarnAfter = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// New opens the pool. Unlike the document store, an unreachable database fails start-up.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres configuration must be provided when storage.driver is postgres")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Every write is a single statement; the refresh token swap is an upsert.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config.Env.Debug),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if params.Metrics != nil {
		if err := params.Metrics.RegisterDBStats(sqlDB, "primary"); err != nil {
			return nil, errors.Wrap(err, "failed to register PostgreSQL pool metrics")
		}
	}

	logger := params.Logger.With(slog.String("component", "postgres"))
	watchCtx, stopWatch := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			go watchPoolWaits(watchCtx, logger, sqlDB)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopWatch()

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// watchPoolWaits warns when requests queue for a connection; request handlers hold
// one connection per statement, so sustained waits mean the pool is undersized.
func watchPoolWaits(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB) {
	ticker := time.NewTicker(poolCheckInterval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waits := cur.WaitCount - prev.WaitCount
			waited := cur.WaitDuration - prev.WaitDuration
			prev = cur

			if waits == 0 {
				continue
			}

			level := slog.LevelDebug
			if waited >= poolWaitWarnAfter {
				level = slog.LevelWarn
			}
			logger.LogAttrs(ctx, level, "Connection pool wait",
				slog.Int64("waits", waits),
				slog.Duration("avg_wait", waited/time.Duration(waits)),
				slog.Int("in_use", cur.InUse),
				slog.Int("max_open", cur.MaxOpenConnections),
			)
		}
	}
}
