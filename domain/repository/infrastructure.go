package repository

import (
	"context"
	"time"

	"vidtube/domain/dto"
	"vidtube/domain/model"
)

// IMediaStorage persists uploaded media. Upload always removes localPath, whatever the outcome,
// and fails with ErrUnsupportedMedia when the file content is not of the expected kind.
type IMediaStorage interface {
	Upload(ctx context.Context, localPath string, kind model.MediaKind) (*model.MediaAsset, error)
	Delete(ctx context.Context, url string) error
}

type IEventPublisher interface {
	Publish(ctx context.Context, event model.DomainEvent) error
	Close() error
}

// IChannelStatsCache returns nil, nil on a miss.
type IChannelStatsCache interface {
	Get(ctx context.Context, channelID string) (*dto.ChannelStats, error)
	Set(ctx context.Context, channelID string, stats *dto.ChannelStats, ttl time.Duration) error
	Invalidate(ctx context.Context, channelID string) error
}

// IActivityNotifier pushes an activity event to every live stream of userID.
type IActivityNotifier interface {
	Notify(userID string, event model.ActivityEvent)
}

// IHealth reports whether the entity store answers.
type IHealth interface {
	Ping(ctx context.Context) error
}
