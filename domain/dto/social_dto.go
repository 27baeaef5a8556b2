package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/model"
)

type ContentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentFeedItem struct {
	ID         bson.ObjectID      `json:"_id" bson:"_id"`
	Content    string             `json:"content" bson:"content"`
	Video      bson.ObjectID      `json:"video" bson:"video"`
	Owner      model.OwnerSummary `json:"owner" bson:"owner"`
	LikesCount int64              `json:"likesCount" bson:"likesCount"`
	IsLiked    bool               `json:"isLiked" bson:"isLiked"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

type TweetFeedItem struct {
	ID         bson.ObjectID      `json:"_id" bson:"_id"`
	Content    string             `json:"content" bson:"content"`
	Owner      model.OwnerSummary `json:"owner" bson:"owner"`
	LikesCount int64              `json:"likesCount" bson:"likesCount"`
	IsLiked    bool               `json:"isLiked" bson:"isLiked"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// ChannelItem is a user listed as a subscriber or as a subscribed channel.
type ChannelItem struct {
	model.OwnerSummary `bson:",inline"`
	SubscribedAt       time.Time `json:"subscribedAt" bson:"subscribedAt"`
}

type ToggleLikeResult struct {
	Liked bool        `json:"liked"`
	Like  *model.Like `json:"like"`
}

type ToggleSubscriptionResult struct {
	Subscribed   bool                `json:"subscribed"`
	Subscription *model.Subscription `json:"subscription"`
}

type PlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlaylistVideo is the summary of a video inside a playlist.
type PlaylistVideo struct {
	ID        bson.ObjectID      `json:"_id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Thumbnail string             `json:"thumbnail" bson:"thumbnail"`
	Duration  float64            `json:"duration" bson:"duration"`
	Views     int64              `json:"views" bson:"views"`
	Owner     model.OwnerSummary `json:"owner" bson:"owner"`
}

type PlaylistDetail struct {
	ID          bson.ObjectID   `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Owner       bson.ObjectID   `json:"owner"`
	Videos      []PlaylistVideo `json:"videos"`
	TotalVideos int             `json:"totalVideos"`
	TotalViews  int64           `json:"totalViews"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ChannelStats is the dashboard summary for one channel.
type ChannelStats struct {
	TotalVideos       int64 `json:"totalVideos" bson:"totalVideos"`
	TotalViews        int64 `json:"totalViews" bson:"totalViews"`
	TotalSubscribers  int64 `json:"totalSubscribers" bson:"totalSubscribers"`
	TotalVideoLikes   int64 `json:"totalVideoLikes" bson:"totalVideoLikes"`
	TotalCommentLikes int64 `json:"totalCommentLikes" bson:"totalCommentLikes"`
	TotalTweetLikes   int64 `json:"totalTweetLikes" bson:"totalTweetLikes"`
}

type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
