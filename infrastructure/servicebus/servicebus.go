package servicebus

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
)

// NewServiceBus accepts either a fully qualified namespace, authenticated with the default
// Azure credential chain, or a connection string.
func NewServiceBus(ctx context.Context, namespace string) (*azservicebus.Client, error) {
	if strings.HasPrefix(namespace, "Endpoint=") {
		return azservicebus.NewClientFromConnectionString(namespace, nil)
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	return azservicebus.NewClient(namespace, cred, nil)
}

type EventPublisher struct {
	client *azservicebus.Client
	sender *azservicebus.Sender
}

func NewEventPublisher(client *azservicebus.Client, queueName string) (repository.IEventPublisher, error) {
	sender, err := client.NewSender(queueName, nil)
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			Error("Error while making new sender service bus.")
		return nil, err
	}
	return &EventPublisher{client: client, sender: sender}, nil
}

func (p *EventPublisher) Publish(ctx context.Context, event model.DomainEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}
	if err := p.sender.SendMessage(ctx, msg, nil); err != nil {
		logger.FromContext(ctx).WithField("error", err).Error("Error while sending message.")
		return err
	}
	return nil
}

func (p *EventPublisher) Close() error {
	ctx := context.Background()
	if err := p.sender.Close(ctx); err != nil {
		logger.GetLogger().
			WithField("error", err).
			Error("Error while closing sender.")
	}
	return p.client.Close(ctx)
}

func newMessage(event model.DomainEvent) (*azservicebus.Message, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	contentType := "application/json"
	subject := event.Type
	return &azservicebus.Message{
		Body:        body,
		ContentType: &contentType,
		Subject:     &subject,
		ApplicationProperties: map[string]interface{}{
			"aggregateId": event.AggregateID,
		},
	}, nil
}
