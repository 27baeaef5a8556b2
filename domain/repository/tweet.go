package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
)

type ITweet interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Tweet, error)
	Feed(ctx context.Context, owner, actor bson.ObjectID, page dto.Page) ([]dto.TweetFeedItem, int64, error)
	UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Tweet, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}
