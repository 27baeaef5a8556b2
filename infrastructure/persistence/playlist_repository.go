package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/utils"
)

type PlaylistRepository struct {
	playlists *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) repository.IPlaylist {
	return &PlaylistRepository{playlists: db.Collection(playlistsCollection)}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	if playlist.ID.IsZero() {
		playlist.ID = bson.NewObjectID()
	}
	if playlist.Videos == nil {
		playlist.Videos = []bson.ObjectID{}
	}
	now := utils.GetCurrentTime()
	playlist.CreatedAt, playlist.UpdatedAt = now, now
	_, err := r.playlists.InsertOne(ctx, playlist)
	return err
}

func (r *PlaylistRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.playlists.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&playlist); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &playlist, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, owner bson.ObjectID) ([]model.Playlist, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.playlists.Find(ctx, bson.D{{Key: "owner", Value: owner}}, opts)
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	playlists := []model.Playlist{}
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, id bson.ObjectID, name, description string) (*model.Playlist, error) {
	set := bson.D{{Key: "updatedAt", Value: utils.GetCurrentTime()}}
	if name != "" {
		set = append(set, bson.E{Key: "name", Value: name})
	}
	if description != "" {
		set = append(set, bson.E{Key: "description", Value: description})
	}
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: set}})
}

func (r *PlaylistRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := r.playlists.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

func (r *PlaylistRepository) AddVideo(ctx context.Context, id, video bson.ObjectID) (*model.Playlist, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "videos", Value: video}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: utils.GetCurrentTime()}}},
	})
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, id, video bson.ObjectID) (*model.Playlist, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{
		{Key: "$pull", Value: bson.D{{Key: "videos", Value: video}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: utils.GetCurrentTime()}}},
	})
}

func (r *PlaylistRepository) PullVideoEverywhere(ctx context.Context, video bson.ObjectID) error {
	_, err := r.playlists.UpdateMany(ctx,
		bson.D{{Key: "videos", Value: video}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "videos", Value: video}}}},
	)
	return err
}

func (r *PlaylistRepository) findOneAndUpdate(ctx context.Context, id bson.ObjectID, update bson.D) (*model.Playlist, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var playlist model.Playlist
	if err := r.playlists.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&playlist); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &playlist, nil
}
