package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const maxToggleAttempts = 8

var errToggleContention = errors.New("toggle did not settle after repeated conflicts")

// relationCollection is the part of *mongo.Collection a toggle needs.
type relationCollection interface {
	DeleteOne(ctx context.Context, filter interface{}, opts ...options.Lister[options.DeleteOneOptions]) (*mongo.DeleteResult, error)
	InsertOne(ctx context.Context, document interface{}, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
}

// toggleRelation flips the existence of the single document matching filter.
//
// Every attempt is one store operation: a delete that either removes the relation or finds
// nothing, then an insert guarded by a unique index. A duplicate-key insert means a concurrent
// toggle created the relation between our delete and insert, so we go again. Each call that
// returns without error therefore flips the relation exactly once.
func toggleRelation[T any](ctx context.Context, coll relationCollection, filter bson.D, build func() *T) (*T, bool, error) {
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		res, err := coll.DeleteOne(ctx, filter)
		if err != nil {
			return nil, false, err
		}
		if res.DeletedCount > 0 {
			return nil, false, nil
		}

		doc := build()
		if _, err := coll.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return nil, false, err
		}
		return doc, true, nil
	}
	return nil, false, errToggleContention
}
