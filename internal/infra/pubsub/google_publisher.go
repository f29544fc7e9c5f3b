package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "academy/internal/delivery/context"
	"academy/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// publishTimeout bounds how long a form submission waits for the broker.
const publishTimeout = 5 * time.Second

// googlePubSubPublisher sends lead events to a Google Cloud Pub/Sub topic.
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher connects to projectID and fails when topicID does not exist.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topicPath}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "lead topic %s is not reachable", topicPath)
	}

	return &googlePubSubPublisher{
		client:    client,
		publisher: client.Publisher(topicID),
		logger:    logger,
	}, nil
}

func (p *googlePubSubPublisher) PublishLeadEvent(ctx context.Context, event *service.LeadEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	serverID, err := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: leadAttributes(event),
	}).Get(ctx)
	if err != nil {
		return errors.Wrapf(err, "publish lead %s", event.LeadID)
	}

	deliverycontext.GetLoggerOrDefault(ctx, p.logger).DebugContext(ctx, "[GooglePubSub] Lead event published",
		slog.String("lead_id", event.LeadID),
		slog.String("source", event.Source),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close flushes pending messages and releases the client.
func (p *googlePubSubPublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
