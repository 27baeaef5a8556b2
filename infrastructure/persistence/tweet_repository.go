package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/utils"
)

type TweetRepository struct {
	tweets *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) repository.ITweet {
	return &TweetRepository{tweets: db.Collection(tweetsCollection)}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	if tweet.ID.IsZero() {
		tweet.ID = bson.NewObjectID()
	}
	now := utils.GetCurrentTime()
	tweet.CreatedAt, tweet.UpdatedAt = now, now
	_, err := r.tweets.InsertOne(ctx, tweet)
	return err
}

func (r *TweetRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.tweets.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&tweet); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &tweet, nil
}

// Feed lists a user's tweets newest first.
func (r *TweetRepository) Feed(ctx context.Context, owner, actor bson.ObjectID, page dto.Page) ([]dto.TweetFeedItem, int64, error) {
	return runFeed[dto.TweetFeedItem](ctx, r.tweets, FeedQuery{
		Match:      bson.D{{Key: "owner", Value: owner}},
		SortDesc:   true,
		Page:       page,
		OwnerField: "owner",
		LikeField:  "tweet",
		Actor:      actor,
	})
}

func (r *TweetRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Tweet, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: utils.GetCurrentTime()},
	}}}
	var tweet model.Tweet
	if err := r.tweets.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&tweet); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &tweet, nil
}

func (r *TweetRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := r.tweets.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}
