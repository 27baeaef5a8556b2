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

type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.IUser {
	return &UserRepository{users: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	now := utils.GetCurrentTime()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.WatchHistory == nil {
		user.WatchHistory = []bson.ObjectID{}
	}
	_, err := r.users.InsertOne(ctx, user)
	return translateWriteError(err)
}

func (r *UserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *UserRepository) FindByLogin(ctx context.Context, username, email string) (*model.User, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.D{{Key: "username", Value: username}})
	}
	if email != "" {
		or = append(or, bson.D{{Key: "email", Value: email}})
	}
	if len(or) == 0 {
		return nil, nil
	}
	return r.findOne(ctx, bson.D{{Key: "$or", Value: or}})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (*model.User, error) {
	var user model.User
	if err := r.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error {
	update := bson.D{{Key: "$unset", Value: bson.D{{Key: "refreshToken", Value: ""}}}}
	if token != "" {
		update = bson.D{{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: token}}}}
	}
	_, err := r.users.UpdateByID(ctx, id, update)
	return err
}

func (r *UserRepository) SetPassword(ctx context.Context, id bson.ObjectID, hash string) error {
	_, err := r.users.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: hash},
		{Key: "updatedAt", Value: utils.GetCurrentTime()},
	}}})
	return err
}

func (r *UserRepository) UpdateAccount(ctx context.Context, id bson.ObjectID, fullName, email string) (*model.User, error) {
	return r.updateOne(ctx, id, bson.D{
		{Key: "fullName", Value: fullName},
		{Key: "email", Value: email},
	})
}

func (r *UserRepository) SetAvatar(ctx context.Context, id bson.ObjectID, url string) (*model.User, error) {
	return r.updateOne(ctx, id, bson.D{{Key: "avatar", Value: url}})
}

func (r *UserRepository) SetCoverImage(ctx context.Context, id bson.ObjectID, url string) (*model.User, error) {
	return r.updateOne(ctx, id, bson.D{{Key: "coverImage", Value: url}})
}

func (r *UserRepository) updateOne(ctx context.Context, id bson.ObjectID, set bson.D) (*model.User, error) {
	set = append(set, bson.E{Key: "updatedAt", Value: utils.GetCurrentTime()})
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user model.User
	err := r.users.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, translateWriteError(err)
	}
	return &user, nil
}

func (r *UserRepository) ChannelProfile(ctx context.Context, username string, actor bson.ObjectID) (*dto.ChannelProfile, error) {
	var isSubscribed interface{} = false
	if !actor.IsZero() {
		isSubscribed = bson.D{{Key: "$in", Value: bson.A{actor, "$subscribers.subscriber"}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "username", Value: username}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: subscriptionsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: bson.D{{Key: "subscriber", Value: 1}}}}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: subscriptionsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "subscriber"},
			{Key: "as", Value: "subscribedTo"},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: bson.D{{Key: "_id", Value: 1}}}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "email", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "subscribersCount", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "channelsSubscribedToCount", Value: bson.D{{Key: "$size", Value: "$subscribedTo"}}},
			{Key: "isSubscribed", Value: isSubscribed},
		}}},
	}
	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var profiles []dto.ChannelProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

func (r *UserRepository) PushWatchHistory(ctx context.Context, id, videoID bson.ObjectID, limit int) error {
	// Single pipeline update: drop any earlier entry, prepend, cap.
	others := bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$watchHistory", bson.A{}}}}},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", videoID}}}},
	}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "watchHistory", Value: bson.D{{Key: "$slice", Value: bson.A{
			bson.D{{Key: "$concatArrays", Value: bson.A{bson.A{videoID}, others}}},
			limit,
		}}}}}}},
	}
	_, err := r.users.UpdateByID(ctx, id, update)
	return err
}

func (r *UserRepository) WatchHistory(ctx context.Context, id bson.ObjectID) ([]dto.VideoFeedItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$project", Value: bson.D{{Key: "watchHistory", Value: 1}}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$watchHistory"},
			{Key: "includeArrayIndex", Value: "position"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: videosCollection},
			{Key: "localField", Value: "watchHistory"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video"},
		}}},
		{{Key: "$unwind", Value: "$video"}},
		{{Key: "$match", Value: visibleTo(id, "video.")}},
		{{Key: "$sort", Value: bson.D{{Key: "position", Value: 1}}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$video"}}}},
	}
	for _, stage := range ownerLookupStages("owner") {
		pipeline = append(pipeline, stage)
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	items := []dto.VideoFeedItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func translateWriteError(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateKey
	}
	return err
}
