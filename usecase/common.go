package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/utils"
)

// Pagination bounds every paged feed.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

func (p Pagination) page(number, limit int) dto.Page {
	return dto.NewPage(number, limit, p.DefaultLimit, p.MaxLimit)
}

func parseID(raw, label string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return bson.ObjectID{}, apperror.Validation(fmt.Sprintf("Invalid %s id", label))
	}
	return id, nil
}

// requireActor turns the authenticated user id into an ObjectID; anything else is 401.
func requireActor(raw string) (bson.ObjectID, error) {
	if raw == "" {
		return bson.ObjectID{}, apperror.Unauthorized("Unauthorized request")
	}
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return bson.ObjectID{}, apperror.Unauthorized("Unauthorized request")
	}
	return id, nil
}

// optionalActor is the zero id for anonymous callers.
func optionalActor(raw string) bson.ObjectID {
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return bson.ObjectID{}
	}
	return id
}

func upstream(ctx context.Context, message string, err error) error {
	logger.FromContext(ctx).WithField("error", err).Error(message)
	return apperror.Upstream(message, err)
}

// mediaError maps a failed upload onto the taxonomy.
func mediaError(ctx context.Context, what string, err error) error {
	if errors.Is(err, repository.ErrUnsupportedMedia) {
		return apperror.Validation(fmt.Sprintf("Unsupported %s file", what)).WithDetail(err.Error())
	}
	return upstream(ctx, fmt.Sprintf("Failed to upload %s", what), err)
}

func deleteMedia(ctx context.Context, media repository.IMediaStorage, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := media.Delete(ctx, url); err != nil {
			logger.FromContext(ctx).WithField("error", err).WithField("url", url).Warn("Failed to delete media")
		}
	}
}

func publishEvent(ctx context.Context, publisher repository.IEventPublisher, eventType string, aggregateID, actorID bson.ObjectID) {
	event := model.DomainEvent{
		Type:        eventType,
		AggregateID: aggregateID.Hex(),
		ActorID:     actorID.Hex(),
		OccurredAt:  utils.GetCurrentTime(),
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).WithField("error", err).WithField("type", eventType).Warn("Failed to publish event")
	}
}

// invalidateChannelStats drops the cached dashboard stats of owner. A nil cache is disabled.
func invalidateChannelStats(ctx context.Context, cache repository.IChannelStatsCache, owner bson.ObjectID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, owner.Hex()); err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("Failed to invalidate channel stats")
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, model.ActivityEvent) {}

// notifyOwner tells owner that actor did something to subject. Self-interactions are not reported.
func notifyOwner(notifier repository.IActivityNotifier, owner, actor bson.ObjectID, activity, subjectType string, subject bson.ObjectID) {
	if owner == actor {
		return
	}
	notifier.Notify(owner.Hex(), model.ActivityEvent{
		Type:        activity,
		ActorID:     actor.Hex(),
		SubjectID:   subject.Hex(),
		SubjectType: subjectType,
		At:          utils.GetCurrentTime(),
	})
}
