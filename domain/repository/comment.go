package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
)

type IComment interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	Feed(ctx context.Context, video, actor bson.ObjectID, page dto.Page) ([]dto.CommentFeedItem, int64, error)
	UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	// DeleteByVideo removes every comment of a video and returns the removed ids.
	DeleteByVideo(ctx context.Context, video bson.ObjectID) ([]bson.ObjectID, error)
}
