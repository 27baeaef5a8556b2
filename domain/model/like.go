package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// LikeTarget names the kind of subject a like points at. Its value is also the
// field name holding the subject reference in a like document.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Collection is the collection holding the subjects of this target.
func (t LikeTarget) Collection() string {
	switch t {
	case LikeTargetVideo:
		return "videos"
	case LikeTargetComment:
		return "comments"
	case LikeTargetTweet:
		return "tweets"
	}
	return ""
}

// Like has exactly one of Video, Comment, Tweet set.
type Like struct {
	ID        bson.ObjectID  `json:"_id"               bson:"_id,omitempty"`
	Video     *bson.ObjectID `json:"video,omitempty"   bson:"video,omitempty"`
	Comment   *bson.ObjectID `json:"comment,omitempty" bson:"comment,omitempty"`
	Tweet     *bson.ObjectID `json:"tweet,omitempty"   bson:"tweet,omitempty"`
	LikedBy   bson.ObjectID  `json:"likedBy"           bson:"likedBy"`
	CreatedAt time.Time      `json:"createdAt"         bson:"createdAt"`
}

// NewLike builds a like for the given subject with only the matching reference set.
func NewLike(target LikeTarget, subject, actor bson.ObjectID) *Like {
	like := &Like{ID: bson.NewObjectID(), LikedBy: actor, CreatedAt: time.Now().UTC()}
	switch target {
	case LikeTargetVideo:
		like.Video = &subject
	case LikeTargetComment:
		like.Comment = &subject
	case LikeTargetTweet:
		like.Tweet = &subject
	}
	return like
}
