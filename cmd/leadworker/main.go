package main

import (
	"context"
	"log/slog"
	"os"

	"academy/config"
	"academy/internal/delivery"
	"academy/internal/delivery/worker"
	"academy/internal/delivery/worker/handler"
	logs "academy/internal/infra/log"
	"academy/internal/infra/metrics"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectHandler(),
		injectDelivery(),
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
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				newWorkerServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// newWorkerServer serves the push endpoint even when the API process does not embed it.
func newWorkerServer(params worker.ServerParams) (delivery.Delivery, error) {
	if params.Cfg.Worker == nil {
		params.Cfg.Worker = &config.WorkerConfig{Enabled: true}
	}
	if params.Cfg.Worker.Port <= 0 {
		params.Cfg.Worker.Port = config.DefaultWorkerPort
	}

	return worker.NewServer(params)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start worker", slog.Any("error", err))
				if shutdownErr := params.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
					os.Exit(1)
				}
			}
		}()
	}
}
