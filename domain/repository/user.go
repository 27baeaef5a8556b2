package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
)

// IUser finders return nil, nil when nothing matches.
type IUser interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByLogin matches on username or email, whichever is non-empty.
	FindByLogin(ctx context.Context, username, email string) (*model.User, error)
	SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error
	SetPassword(ctx context.Context, id bson.ObjectID, hash string) error
	UpdateAccount(ctx context.Context, id bson.ObjectID, fullName, email string) (*model.User, error)
	SetAvatar(ctx context.Context, id bson.ObjectID, url string) (*model.User, error)
	SetCoverImage(ctx context.Context, id bson.ObjectID, url string) (*model.User, error)
	ChannelProfile(ctx context.Context, username string, actor bson.ObjectID) (*dto.ChannelProfile, error)
	// PushWatchHistory moves videoID to the front of the history, keeping at most limit entries.
	PushWatchHistory(ctx context.Context, id, videoID bson.ObjectID, limit int) error
	WatchHistory(ctx context.Context, id bson.ObjectID) ([]dto.VideoFeedItem, error)
}
