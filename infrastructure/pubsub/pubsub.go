package pubsub

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/pubsub"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
)

func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	return pubsub.NewClient(ctx, projectID)
}

// EventPublisher sends domain events to a single Pub/Sub topic.
type EventPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewEventPublisher creates the topic when it does not exist yet.
func NewEventPublisher(ctx context.Context, client *pubsub.Client, topicID string) (repository.IEventPublisher, error) {
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.GetLogger().WithField("topic", topicID).Info("Topic doesn't exist - creating it")
		if topic, err = client.CreateTopic(ctx, topicID); err != nil {
			return nil, err
		}
	}
	return &EventPublisher{client: client, topic: topic}, nil
}

func (p *EventPublisher) Publish(ctx context.Context, event model.DomainEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}
	serverID, err := p.topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).
		WithField("serverId", serverID).
		WithField("type", event.Type).
		Debug("Event published")
	return nil
}

func (p *EventPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}

func newMessage(event model.DomainEvent) (*pubsub.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"type":        event.Type,
			"aggregateId": event.AggregateID,
		},
	}, nil
}
