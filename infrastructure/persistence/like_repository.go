package persistence

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type LikeRepository struct {
	likes *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) repository.ILike {
	return &LikeRepository{likes: db.Collection(likesCollection)}
}

func (r *LikeRepository) Toggle(ctx context.Context, target model.LikeTarget, subject, actor bson.ObjectID) (*model.Like, bool, error) {
	filter := bson.D{
		{Key: string(target), Value: subject},
		{Key: "likedBy", Value: actor},
	}
	return toggleRelation(ctx, r.likes, filter, func() *model.Like {
		return model.NewLike(target, subject, actor)
	})
}

func (r *LikeRepository) DeleteBySubjects(ctx context.Context, target model.LikeTarget, subjects []bson.ObjectID) error {
	if len(subjects) == 0 {
		return nil
	}
	_, err := r.likes.DeleteMany(ctx, bson.D{{Key: string(target), Value: bson.D{{Key: "$in", Value: subjects}}}})
	return err
}

// LikedVideos lists the videos actor liked, most recently liked first. Videos that have since
// become invisible to actor are left out.
func (r *LikeRepository) LikedVideos(ctx context.Context, actor bson.ObjectID, page dto.Page) ([]dto.VideoFeedItem, int64, error) {
	pre := []bson.D{
		{{Key: "$match", Value: bson.D{
			{Key: "likedBy", Value: actor},
			{Key: "video", Value: bson.D{{Key: "$exists", Value: true}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: videosCollection},
			{Key: "localField", Value: "video"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video"},
		}}},
		{{Key: "$unwind", Value: "$video"}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: bson.D{{Key: "$mergeObjects", Value: bson.A{
			"$video",
			bson.D{{Key: "likedAt", Value: "$createdAt"}},
		}}}}}}},
	}
	return runFeed[dto.VideoFeedItem](ctx, r.likes, FeedQuery{
		Pre:           pre,
		Match:         visibleTo(actor, ""),
		SortField:     "likedAt",
		SortDesc:      true,
		Page:          page,
		OwnerField:    "owner",
		LikeField:     "video",
		Actor:         actor,
		CountComments: true,
	})
}

func (r *LikeRepository) CountForOwner(ctx context.Context, target model.LikeTarget, owner bson.ObjectID) (int64, error) {
	field := string(target)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: field, Value: bson.D{{Key: "$exists", Value: true}}}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: target.Collection()},
			{Key: "localField", Value: field},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "subject"},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: bson.D{{Key: "owner", Value: 1}}}}}},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "subject.owner", Value: owner}}}},
		{{Key: "$count", Value: "total"}},
	}
	cursor, err := r.likes.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer closeCursor(ctx, cursor)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
