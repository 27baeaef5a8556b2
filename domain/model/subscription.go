package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Subscription links a subscriber to a channel (another user).
type Subscription struct {
	ID         bson.ObjectID `json:"_id"        bson:"_id,omitempty"`
	Subscriber bson.ObjectID `json:"subscriber" bson:"subscriber"`
	Channel    bson.ObjectID `json:"channel"    bson:"channel"`
	CreatedAt  time.Time     `json:"createdAt"  bson:"createdAt"`
}
