package events

import (
	"context"
	"fmt"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/configuration"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/pubsub"
	"vidtube/infrastructure/servicebus"
)

const (
	ProviderNone       = "none"
	ProviderPubSub     = "pubsub"
	ProviderServiceBus = "servicebus"
)

// NewPublisher builds the publisher selected by cfg.Provider.
func NewPublisher(ctx context.Context, cfg configuration.Events) (repository.IEventPublisher, error) {
	switch cfg.Provider {
	case "", ProviderNone:
		return NoopPublisher{}, nil
	case ProviderPubSub:
		client, err := pubsub.NewPubSub(ctx, cfg.Pubsub.ProjectID)
		if err != nil {
			return nil, err
		}
		publisher, err := pubsub.NewEventPublisher(ctx, client, cfg.Pubsub.TopicID)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return publisher, nil
	case ProviderServiceBus:
		client, err := servicebus.NewServiceBus(ctx, cfg.ServiceBus.Namespace)
		if err != nil {
			return nil, err
		}
		publisher, err := servicebus.NewEventPublisher(client, cfg.ServiceBus.QueueName)
		if err != nil {
			_ = client.Close(ctx)
			return nil, err
		}
		return publisher, nil
	}
	return nil, fmt.Errorf("unknown events provider %q", cfg.Provider)
}

// NoopPublisher drops events. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event model.DomainEvent) error {
	logger.FromContext(ctx).WithField("type", event.Type).Debug("Event dropped, no broker configured")
	return nil
}

func (NoopPublisher) Close() error { return nil }
