package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type relation struct {
	ID bson.ObjectID
}

// fakeRelationCollection models a collection holding at most one document for a single
// (subject, actor) pair, the way the unique index does.
type fakeRelationCollection struct {
	mu        sync.Mutex
	present   bool
	deleteErr error
	insertErr error
	// conflicts makes the next n inserts fail as if another writer got there first.
	conflicts int
}

func (f *fakeRelationCollection) DeleteOne(_ context.Context, _ interface{}, _ ...options.Lister[options.DeleteOneOptions]) (*mongo.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	if f.present {
		f.present = false
		return &mongo.DeleteResult{DeletedCount: 1}, nil
	}
	return &mongo.DeleteResult{}, nil
}

func (f *fakeRelationCollection) InsertOne(_ context.Context, doc interface{}, _ ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if f.conflicts > 0 {
		f.conflicts--
		f.present = true
		return nil, duplicateKeyError()
	}
	if f.present {
		return nil, duplicateKeyError()
	}
	f.present = true
	return &mongo.InsertOneResult{InsertedID: doc.(*relation).ID}, nil
}

func (f *fakeRelationCollection) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.present {
		return 1
	}
	return 0
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

func newRelation() *relation { return &relation{ID: bson.NewObjectID()} }

var pairFilter = bson.D{{Key: "video", Value: bson.NewObjectID()}, {Key: "likedBy", Value: bson.NewObjectID()}}

func TestToggleRelationAlternates(t *testing.T) {
	coll := &fakeRelationCollection{}
	ctx := context.Background()

	doc, added, err := toggleRelation(ctx, coll, pairFilter, newRelation)
	require.NoError(t, err)
	assert.True(t, added)
	require.NotNil(t, doc)
	assert.Equal(t, 1, coll.count())

	doc, added, err = toggleRelation(ctx, coll, pairFilter, newRelation)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Nil(t, doc)
	assert.Equal(t, 0, coll.count())
}

func TestToggleRelationRetriesAfterLostRace(t *testing.T) {
	// The first insert collides with a concurrent writer, so the retry deletes that writer's document.
	coll := &fakeRelationCollection{conflicts: 1}

	doc, added, err := toggleRelation(context.Background(), coll, pairFilter, newRelation)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Nil(t, doc)
	assert.Equal(t, 0, coll.count())
}

func TestToggleRelationGivesUpUnderContention(t *testing.T) {
	coll := &fakeRelationCollection{insertErr: duplicateKeyError()}

	_, _, err := toggleRelation(context.Background(), coll, pairFilter, newRelation)
	assert.ErrorIs(t, err, errToggleContention)
}

func TestToggleRelationPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")

	_, _, err := toggleRelation(context.Background(), &fakeRelationCollection{deleteErr: boom}, pairFilter, newRelation)
	assert.ErrorIs(t, err, boom)

	_, _, err = toggleRelation(context.Background(), &fakeRelationCollection{insertErr: boom}, pairFilter, newRelation)
	assert.ErrorIs(t, err, boom)
}

func TestToggleRelationConcurrentParity(t *testing.T) {
	for _, n := range []int{1, 2, 7, 50, 51} {
		coll := &fakeRelationCollection{}
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			added   int
			removed int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, ok, err := toggleRelation(context.Background(), coll, pairFilter, newRelation)
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				if ok {
					added++
				} else {
					removed++
				}
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, n%2, coll.count(), "n=%d", n)
		assert.Equal(t, n, added+removed)
		assert.Equal(t, coll.count(), added-removed)
	}
}
