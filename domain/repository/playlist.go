package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/model"
)

type IPlaylist interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Playlist, error)
	ListByOwner(ctx context.Context, owner bson.ObjectID) ([]model.Playlist, error)
	Update(ctx context.Context, id bson.ObjectID, name, description string) (*model.Playlist, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	// AddVideo is a set insert; adding a video twice leaves one entry.
	AddVideo(ctx context.Context, id, video bson.ObjectID) (*model.Playlist, error)
	RemoveVideo(ctx context.Context, id, video bson.ObjectID) (*model.Playlist, error)
	// PullVideoEverywhere drops a deleted video from all playlists.
	PullVideoEverywhere(ctx context.Context, video bson.ObjectID) error
}
