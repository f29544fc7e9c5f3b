// Package pubsub publishes lead events for the follow-up worker.
package pubsub

import (
	"context"
	"log/slog"

	"academy/config"
	deliverycontext "academy/internal/delivery/context"
	"academy/internal/domain/constants"
	"academy/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher drops events when no provider is configured. Leads are stored either way.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishLeadEvent(ctx context.Context, event *service.LeadEvent) error {
	deliverycontext.GetLoggerOrDefault(ctx, p.logger).DebugContext(ctx, "[NoopPubSub] Lead event not published",
		slog.String("lead_id", event.LeadID),
		slog.String("source", event.Source),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher picks the publisher named by pubsub.provider and closes it on stop.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	logger := params.Logger.With(slog.String("component", "pubsub"))

	publisher, err := newPublisher(params.Ctx, params.Config.PubSub, logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

func newPublisher(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	if cfg == nil || cfg.Provider == "" {
		logger.Info("Lead events disabled, no pubsub provider configured")

		return &noopPublisher{logger: logger}, nil
	}

	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("pubsub.localEndpoint is required for the local provider")
		}
		logger.Info("Pushing lead events to local worker", slog.String("endpoint", cfg.LocalEndpoint))

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}
		logger.Info("Publishing lead events to Google Pub/Sub",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}
