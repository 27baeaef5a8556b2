package persistence

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"vidtube/infrastructure/logger"
)

const (
	usersCollection         = "users"
	videosCollection        = "videos"
	commentsCollection      = "comments"
	likesCollection         = "likes"
	tweetsCollection        = "tweets"
	subscriptionsCollection = "subscriptions"
	playlistsCollection     = "playlists"
)

// NewMongoDb connects and pings once so a bad URI fails at startup rather than on the first request.
func NewMongoDb(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		if dErr := client.Disconnect(context.Background()); dErr != nil {
			logger.GetLogger().WithField("error", dErr).Warn("Error while disconnecting MongoDB after failed ping")
		}
		return nil, err
	}
	return client, nil
}

type HealthRepository struct {
	client *mongo.Client
}

func NewHealthRepository(client *mongo.Client) *HealthRepository {
	return &HealthRepository{client: client}
}

func (h *HealthRepository) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}

func closeCursor(ctx context.Context, cursor *mongo.Cursor) {
	if err := cursor.Close(ctx); err != nil {
		logger.FromContext(ctx).WithField("error", err).Error("Error while closing cursor")
	}
}
