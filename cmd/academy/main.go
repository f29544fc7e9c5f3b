package main

import (
	"context"
	"log/slog"
	"os"

	"academy/config"
	"academy/internal/delivery"
	"academy/internal/delivery/api"
	"academy/internal/delivery/api/middleware"
	"academy/internal/delivery/api/router/handler"
	"academy/internal/delivery/worker"
	workerhandler "academy/internal/delivery/worker/handler"
	"academy/internal/infra/auth"
	logs "academy/internal/infra/log"
	"academy/internal/infra/metrics"
	"academy/internal/infra/persistence"
	"academy/internal/infra/pubsub"
	"academy/internal/infra/revocation"
	"academy/internal/infra/sanitize"
	"academy/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.New,
		persistence.New,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			sanitize.NewSanitizer,
			revocation.NewTokenRevoker,
			pubsub.NewEventPublisher,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewSessionService,
			impl.NewActivityService,
			impl.NewContentService,
			impl.NewLeadService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProfileHandler,
			handler.NewTrackerHandler,
			handler.NewContentHandler,
			handler.NewLeadHandler,
			handler.NewHealthHandler,
			workerhandler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				newEmbeddedWorker,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// newEmbeddedWorker runs the push endpoint inside the API process when worker.enabled is set.
func newEmbeddedWorker(params worker.ServerParams) (delivery.Delivery, error) {
	if params.Cfg.Worker == nil || !params.Cfg.Worker.Enabled {
		return nil, nil
	}

	return worker.NewServer(params)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		if delivery == nil {
			continue
		}
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
