package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
)

// VideoFeedFilter narrows a video feed. A zero Owner means every channel; a zero Actor is anonymous.
type VideoFeedFilter struct {
	Owner         bson.ObjectID
	Query         string
	SortBy        string
	SortDesc      bool
	PublishedOnly bool
	Actor         bson.ObjectID
}

type VideoUpdate struct {
	Title       string
	Description string
	Thumbnail   string
}

type IVideo interface {
	Create(ctx context.Context, video *model.Video) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Video, error)
	// Detail is a single video with the owner summary and like state joined in.
	Detail(ctx context.Context, id, actor bson.ObjectID) (*dto.VideoFeedItem, error)
	Feed(ctx context.Context, filter VideoFeedFilter, page dto.Page) ([]dto.VideoFeedItem, int64, error)
	Update(ctx context.Context, id bson.ObjectID, update VideoUpdate) (*model.Video, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	// TogglePublish flips isPublished in a single write and returns the stored result.
	TogglePublish(ctx context.Context, id bson.ObjectID) (*model.Video, error)
	IncrementViews(ctx context.Context, id bson.ObjectID) error
	ListByOwner(ctx context.Context, owner bson.ObjectID) ([]model.Video, error)
	// Summaries returns the videos of ids visible to actor, in the order of ids.
	Summaries(ctx context.Context, ids []bson.ObjectID, actor bson.ObjectID) ([]dto.PlaylistVideo, error)
	OwnerTotals(ctx context.Context, owner bson.ObjectID) (videos int64, views int64, err error)
}
