package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Video struct {
	ID          bson.ObjectID `json:"_id"         bson:"_id,omitempty"`
	VideoFile   string        `json:"videoFile"   bson:"videoFile"`
	Thumbnail   string        `json:"thumbnail"   bson:"thumbnail"`
	Owner       bson.ObjectID `json:"owner"       bson:"owner"`
	Title       string        `json:"title"       bson:"title"`
	Description string        `json:"description" bson:"description"`
	Duration    float64       `json:"duration"    bson:"duration"`
	Views       int64         `json:"views"       bson:"views"`
	IsPublished bool          `json:"isPublished" bson:"isPublished"`
	CreatedAt   time.Time     `json:"createdAt"   bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"   bson:"updatedAt"`
}

// VisibleTo reports whether actor may see the video. Unpublished videos exist only for their owner.
func (v *Video) VisibleTo(actor bson.ObjectID) bool {
	return v.IsPublished || v.Owner == actor
}

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// MediaAsset is what the media service hands back after an upload.
type MediaAsset struct {
	URL         string  `json:"url"`
	Duration    float64 `json:"duration,omitempty"`
	ContentType string  `json:"contentType"`
}
