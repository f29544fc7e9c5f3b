// Package persistence selects the storage backend and owns its availability flag.
package persistence

import (
	"context"
	"log/slog"

	"academy/config"
	"academy/internal/domain/lifecycle"
	"academy/internal/domain/repository"
	"academy/internal/domain/service"
	"academy/internal/errors"
	"academy/internal/infra/metrics"
	"academy/internal/infra/persistence/memory"
	"academy/internal/infra/persistence/mongodb"
	"academy/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params holds the dependencies of the storage layer, injected by Fx.
type Params struct {
	fx.In

	Lc      fx.Lifecycle
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Result exposes every repository of the selected backend individually.
type Result struct {
	fx.Out

	Students      repository.StudentRepository
	Teachers      repository.TeacherRepository
	RefreshTokens repository.RefreshTokenRepository
	Activities    repository.ActivityRepository
	Courses       repository.CourseRepository
	Reviews       repository.ReviewRepository
	BlogPosts     repository.BlogPostRepository
	Articles      repository.ArticleRepository
	Leads         repository.LeadRepository
	Availability  service.StoreAvailability
	Monitor       *Monitor
}

// New opens the configured backend and starts its availability monitor with the application.
func New(params Params) (Result, error) {
	logger := params.Logger.With(slog.String("component", "persistence"))
	driver := params.Config.Storage.Driver

	var (
		set        repository.Set
		closeStore func(context.Context) error
		observe    func(onLoss func())
	)

	switch driver {
	case config.StorageDriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		store, err := mongodb.Connect(ctx, params.Config.Mongo, logger)
		if err != nil {
			return Result{}, err
		}
		set = store.Set()
		closeStore = store.Close
		observe = store.Observe

	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
			Metrics:   params.Metrics,
		})
		if err != nil {
			return Result{}, err
		}
		set = postgres.NewStore(db).Set()

	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		set, _ = memory.NewSet()

	default:
		return Result{}, errors.Errorf("unknown storage driver %q", driver)
	}

	monitor := NewMonitor(set.Health, params.Config.Storage.ReconnectInterval, logger, params.Metrics.SetStoreAvailable)
	if observe != nil {
		observe(func() { monitor.SetAvailable(false) })
	}

	logger.Info("Storage backend selected", slog.String("driver", driver))

	return finish(params.Lc, set, monitor, closeStore), nil
}

func finish(lc fx.Lifecycle, set repository.Set, monitor *Monitor, closeStore func(context.Context) error) Result {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			monitor.Start(ctx)

			return nil
		},
		OnStop: func(ctx context.Context) error {
			monitor.Stop()
			if closeStore != nil {
				return closeStore(ctx)
			}

			return nil
		},
	})

	return Result{
		Students:      set.Students,
		Teachers:      set.Teachers,
		RefreshTokens: set.RefreshTokens,
		Activities:    set.Activities,
		Courses:       set.Courses,
		Reviews:       set.Reviews,
		BlogPosts:     set.BlogPosts,
		Articles:      set.Articles,
		Leads:         set.Leads,
		Availability:  monitor,
		Monitor:       monitor,
	}
}
