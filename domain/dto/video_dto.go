package dto

import (
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/model"
)

// VideoListQuery is bound from the query string of GET /videos.
type VideoListQuery struct {
	Page     int    `form:"page" url:"page,omitempty"`
	Limit    int    `form:"limit" url:"limit,omitempty"`
	Query    string `form:"query" url:"query,omitempty"`
	SortBy   string `form:"sortBy" url:"sortBy,omitempty"`
	SortType string `form:"sortType" url:"sortType,omitempty"`
	UserID   string `form:"userId" url:"userId,omitempty"`
}

type PublishVideoRequest struct {
	Title       string                `form:"title" binding:"required"`
	Description string                `form:"description" binding:"required"`
	IsPublished *bool                 `form:"isPublished"`
	VideoFile   *multipart.FileHeader `form:"videoFile"`
	Thumbnail   *multipart.FileHeader `form:"thumbnail"`
}

type PublishVideoInput struct {
	Title         string
	Description   string
	IsPublished   bool
	VideoPath     string
	ThumbnailPath string
}

type UpdateVideoRequest struct {
	Title       string                `form:"title"`
	Description string                `form:"description"`
	Thumbnail   *multipart.FileHeader `form:"thumbnail"`
}

type UpdateVideoInput struct {
	Title         string
	Description   string
	ThumbnailPath string
}

// VideoFeedItem is one row of a video feed, with the owner joined in.
type VideoFeedItem struct {
	ID            bson.ObjectID      `json:"_id" bson:"_id"`
	VideoFile     string             `json:"videoFile" bson:"videoFile"`
	Thumbnail     string             `json:"thumbnail" bson:"thumbnail"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description" bson:"description"`
	Duration      float64            `json:"duration" bson:"duration"`
	Views         int64              `json:"views" bson:"views"`
	IsPublished   bool               `json:"isPublished" bson:"isPublished"`
	Owner         model.OwnerSummary `json:"owner" bson:"owner"`
	LikesCount    int64              `json:"likesCount" bson:"likesCount"`
	CommentsCount int64              `json:"commentsCount" bson:"commentsCount"`
	IsLiked       bool               `json:"isLiked" bson:"isLiked"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}
