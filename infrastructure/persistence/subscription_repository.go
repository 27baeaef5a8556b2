package persistence

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/utils"
)

type SubscriptionRepository struct {
	subscriptions *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) repository.ISubscription {
	return &SubscriptionRepository{subscriptions: db.Collection(subscriptionsCollection)}
}

func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriber, channel bson.ObjectID) (*model.Subscription, bool, error) {
	filter := bson.D{
		{Key: "subscriber", Value: subscriber},
		{Key: "channel", Value: channel},
	}
	return toggleRelation(ctx, r.subscriptions, filter, func() *model.Subscription {
		return &model.Subscription{
			ID:         bson.NewObjectID(),
			Subscriber: subscriber,
			Channel:    channel,
			CreatedAt:  utils.GetCurrentTime(),
		}
	})
}

func (r *SubscriptionRepository) Subscribers(ctx context.Context, channel bson.ObjectID, page dto.Page) ([]dto.ChannelItem, int64, error) {
	return r.people(ctx, bson.D{{Key: "channel", Value: channel}}, "subscriber", page)
}

func (r *SubscriptionRepository) SubscribedChannels(ctx context.Context, subscriber bson.ObjectID, page dto.Page) ([]dto.ChannelItem, int64, error) {
	return r.people(ctx, bson.D{{Key: "subscriber", Value: subscriber}}, "channel", page)
}

// people pages subscriptions matching filter and replaces each by the public profile of userField.
func (r *SubscriptionRepository) people(ctx context.Context, filter bson.D, userField string, page dto.Page) ([]dto.ChannelItem, int64, error) {
	items := []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: userField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: ownerProjection()}}}},
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: bson.D{{Key: "$mergeObjects", Value: bson.A{
			"$user",
			bson.D{{Key: "subscribedAt", Value: "$createdAt"}},
		}}}}}}},
	}
	return runFeed[dto.ChannelItem](ctx, r.subscriptions, FeedQuery{
		Match:      filter,
		Page:       page,
		ItemStages: items,
	})
}

func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channel bson.ObjectID) (int64, error) {
	return r.subscriptions.CountDocuments(ctx, bson.D{{Key: "channel", Value: channel}})
}
