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

type CommentRepository struct {
	comments *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) repository.IComment {
	return &CommentRepository{comments: db.Collection(commentsCollection)}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = bson.NewObjectID()
	}
	now := utils.GetCurrentTime()
	comment.CreatedAt, comment.UpdatedAt = now, now
	_, err := r.comments.InsertOne(ctx, comment)
	return err
}

func (r *CommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.comments.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Feed(ctx context.Context, video, actor bson.ObjectID, page dto.Page) ([]dto.CommentFeedItem, int64, error) {
	return runFeed[dto.CommentFeedItem](ctx, r.comments, FeedQuery{
		Match:      bson.D{{Key: "video", Value: video}},
		Page:       page,
		OwnerField: "owner",
		LikeField:  "comment",
		Actor:      actor,
	})
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: utils.GetCurrentTime()},
	}}}
	var comment model.Comment
	if err := r.comments.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := r.comments.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

func (r *CommentRepository) DeleteByVideo(ctx context.Context, video bson.ObjectID) ([]bson.ObjectID, error) {
	filter := bson.D{{Key: "video", Value: video}}
	cursor, err := r.comments.Find(ctx, filter, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var rows []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]bson.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if _, err := r.comments.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}); err != nil {
		return nil, err
	}
	return ids, nil
}
