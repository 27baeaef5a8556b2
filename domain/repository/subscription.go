package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
)

type ISubscription interface {
	// Toggle behaves like ILike.Toggle for the (subscriber, channel) pair.
	Toggle(ctx context.Context, subscriber, channel bson.ObjectID) (*model.Subscription, bool, error)
	Subscribers(ctx context.Context, channel bson.ObjectID, page dto.Page) ([]dto.ChannelItem, int64, error)
	SubscribedChannels(ctx context.Context, subscriber bson.ObjectID, page dto.Page) ([]dto.ChannelItem, int64, error)
	CountSubscribers(ctx context.Context, channel bson.ObjectID) (int64, error)
}
