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

type VideoRepository struct {
	videos *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) repository.IVideo {
	return &VideoRepository{videos: db.Collection(videosCollection)}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	if video.ID.IsZero() {
		video.ID = bson.NewObjectID()
	}
	now := utils.GetCurrentTime()
	video.CreatedAt, video.UpdatedAt = now, now
	_, err := r.videos.InsertOne(ctx, video)
	return err
}

func (r *VideoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Video, error) {
	var video model.Video
	if err := r.videos.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&video); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) Detail(ctx context.Context, id, actor bson.ObjectID) (*dto.VideoFeedItem, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}}}
	pipeline = append(pipeline, ownerLookupStages("owner")...)
	pipeline = append(pipeline, likeStages("video", actor)...)
	pipeline = append(pipeline, commentCountStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.D{{Key: "likes", Value: 0}, {Key: "comments", Value: 0}}}})

	cursor, err := r.videos.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var items []dto.VideoFeedItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (r *VideoRepository) Feed(ctx context.Context, filter repository.VideoFeedFilter, page dto.Page) ([]dto.VideoFeedItem, int64, error) {
	return runFeed[dto.VideoFeedItem](ctx, r.videos, videoFeedQuery(filter, page))
}

func videoFeedQuery(filter repository.VideoFeedFilter, page dto.Page) FeedQuery {
	match := bson.D{}
	if !filter.Owner.IsZero() {
		match = append(match, bson.E{Key: "owner", Value: filter.Owner})
	}
	if filter.PublishedOnly {
		match = append(match, bson.E{Key: "isPublished", Value: true})
	}
	return FeedQuery{
		Match:         match,
		SearchFields:  []string{"title", "description"},
		SearchTerm:    filter.Query,
		SortField:     filter.SortBy,
		SortDesc:      filter.SortDesc,
		Page:          page,
		OwnerField:    "owner",
		LikeField:     "video",
		Actor:         filter.Actor,
		CountComments: true,
	}
}

func (r *VideoRepository) Update(ctx context.Context, id bson.ObjectID, update repository.VideoUpdate) (*model.Video, error) {
	set := bson.D{{Key: "updatedAt", Value: utils.GetCurrentTime()}}
	if update.Title != "" {
		set = append(set, bson.E{Key: "title", Value: update.Title})
	}
	if update.Description != "" {
		set = append(set, bson.E{Key: "description", Value: update.Description})
	}
	if update.Thumbnail != "" {
		set = append(set, bson.E{Key: "thumbnail", Value: update.Thumbnail})
	}
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: set}})
}

func (r *VideoRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := r.videos.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

func (r *VideoRepository) TogglePublish(ctx context.Context, id bson.ObjectID) (*model.Video, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isPublished", Value: bson.D{{Key: "$not", Value: bson.A{"$isPublished"}}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *VideoRepository) findOneAndUpdate(ctx context.Context, id bson.ObjectID, update interface{}) (*model.Video, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var video model.Video
	if err := r.videos.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&video); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id bson.ObjectID) error {
	_, err := r.videos.UpdateByID(ctx, id, bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}})
	return err
}

func (r *VideoRepository) ListByOwner(ctx context.Context, owner bson.ObjectID) ([]model.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.videos.Find(ctx, bson.D{{Key: "owner", Value: owner}}, opts)
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	videos := []model.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *VideoRepository) Summaries(ctx context.Context, ids []bson.ObjectID, actor bson.ObjectID) ([]dto.PlaylistVideo, error) {
	if len(ids) == 0 {
		return []dto.PlaylistVideo{}, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
			{Key: "$and", Value: bson.A{visibleTo(actor, "")}},
		}}},
	}
	pipeline = append(pipeline, ownerLookupStages("owner")...)

	cursor, err := r.videos.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var found []dto.PlaylistVideo
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	byID := make(map[bson.ObjectID]dto.PlaylistVideo, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}
	ordered := make([]dto.PlaylistVideo, 0, len(found))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

func (r *VideoRepository) OwnerTotals(ctx context.Context, owner bson.ObjectID) (int64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner", Value: owner}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "videos", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "views", Value: bson.D{{Key: "$sum", Value: "$views"}}},
		}}},
	}
	cursor, err := r.videos.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer closeCursor(ctx, cursor)

	var totals []struct {
		Videos int64 `bson:"videos"`
		Views  int64 `bson:"views"`
	}
	if err := cursor.All(ctx, &totals); err != nil {
		return 0, 0, err
	}
	if len(totals) == 0 {
		return 0, 0, nil
	}
	return totals[0].Videos, totals[0].Views, nil
}
