package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
)

type ILike interface {
	// Toggle flips the like of actor on subject. It returns the created like and true when the
	// like was added, or nil and false when an existing like was removed.
	Toggle(ctx context.Context, target model.LikeTarget, subject, actor bson.ObjectID) (*model.Like, bool, error)
	DeleteBySubjects(ctx context.Context, target model.LikeTarget, subjects []bson.ObjectID) error
	LikedVideos(ctx context.Context, actor bson.ObjectID, page dto.Page) ([]dto.VideoFeedItem, int64, error)
	// CountForOwner counts likes on subjects of the given kind owned by owner.
	CountForOwner(ctx context.Context, target model.LikeTarget, owner bson.ObjectID) (int64, error)
}
