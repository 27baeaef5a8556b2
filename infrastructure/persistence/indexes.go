package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func uniqueWhenPresent(field string) *options.IndexOptionsBuilder {
	return options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.D{{Key: field, Value: bson.D{{Key: "$exists", Value: true}}}})
}

// EnsureIndexes creates the indexes the repositories depend on. The unique ones back the
// toggle operations and the username/email conflict checks, so startup must not continue without them.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		videosCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "isPublished", Value: 1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "video", Value: 1}, {Key: "_id", Value: 1}}},
		},
		likesCollection: {
			{Keys: bson.D{{Key: "video", Value: 1}, {Key: "likedBy", Value: 1}}, Options: uniqueWhenPresent("video")},
			{Keys: bson.D{{Key: "comment", Value: 1}, {Key: "likedBy", Value: 1}}, Options: uniqueWhenPresent("comment")},
			{Keys: bson.D{{Key: "tweet", Value: 1}, {Key: "likedBy", Value: 1}}, Options: uniqueWhenPresent("tweet")},
			{Keys: bson.D{{Key: "likedBy", Value: 1}}},
		},
		tweetsCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "_id", Value: 1}}},
		},
		subscriptionsCollection: {
			{Keys: bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "channel", Value: 1}}},
		},
		playlistsCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes on %s failed: %w", name, err)
		}
	}
	return nil
}
