package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"vidtube/domain/dto"
	"vidtube/domain/repository"
)

func stageOp(t *testing.T, stage bson.D) string {
	t.Helper()
	require.Len(t, stage, 1)
	return stage[0].Key
}

func facetItems(t *testing.T, pipeline mongo.Pipeline) bson.A {
	t.Helper()
	last := pipeline[len(pipeline)-1]
	require.Equal(t, "$facet", stageOp(t, last))
	facet := last[0].Value.(bson.D)
	require.Equal(t, "metadata", facet[0].Key)
	require.Equal(t, "items", facet[1].Key)
	return facet[1].Value.(bson.A)
}

func TestBuildFeedPipelineOrder(t *testing.T) {
	owner := bson.NewObjectID()
	pipeline := BuildFeedPipeline(FeedQuery{
		Match:        bson.D{{Key: "owner", Value: owner}},
		SearchFields: []string{"title", "description"},
		SearchTerm:   "go",
		SortField:    "views",
		SortDesc:     true,
		Page:         dto.Page{Number: 3, Limit: 10},
		OwnerField:   "owner",
		LikeField:    "video",
	})

	require.Len(t, pipeline, 3)
	assert.Equal(t, "$match", stageOp(t, pipeline[0]))
	assert.Equal(t, "$sort", stageOp(t, pipeline[1]))
	assert.Equal(t, bson.D{{Key: "views", Value: -1}, {Key: "_id", Value: -1}}, pipeline[1][0].Value)

	items := facetItems(t, pipeline)
	assert.Equal(t, bson.D{{Key: "$skip", Value: int64(20)}}, items[0])
	assert.Equal(t, bson.D{{Key: "$limit", Value: int64(10)}}, items[1])

	var ops []string
	for _, s := range items[2:] {
		ops = append(ops, stageOp(t, s.(bson.D)))
	}
	assert.Equal(t, []string{"$lookup", "$addFields", "$lookup", "$addFields", "$project"}, ops)
}

func TestBuildFeedPipelineDefaultSortIsInsertionOrder(t *testing.T) {
	pipeline := BuildFeedPipeline(FeedQuery{Page: dto.Page{Number: 1, Limit: 5}})

	require.Len(t, pipeline, 2)
	assert.Equal(t, bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}}, pipeline[0])
	items := facetItems(t, pipeline)
	assert.Len(t, items, 2)
}

func TestBuildFeedPipelineEscapesSearchTerm(t *testing.T) {
	pipeline := BuildFeedPipeline(FeedQuery{
		SearchFields: []string{"title"},
		SearchTerm:   "a.b*(c",
		Page:         dto.Page{Number: 1, Limit: 5},
	})

	match := pipeline[0][0].Value.(bson.D)
	require.Equal(t, "$or", match[0].Key)
	clause := match[0].Value.(bson.A)[0].(bson.D)
	assert.Equal(t, bson.Regex{Pattern: `a\.b\*\(c`, Options: "i"}, clause[0].Value)
}

func TestLikeStagesAnonymousActor(t *testing.T) {
	stages := likeStages("video", bson.ObjectID{})
	fields := stages[1][0].Value.(bson.D)
	assert.Equal(t, "isLiked", fields[1].Key)
	assert.Equal(t, false, fields[1].Value)

	actor := bson.NewObjectID()
	stages = likeStages("video", actor)
	fields = stages[1][0].Value.(bson.D)
	assert.Equal(t, bson.D{{Key: "$in", Value: bson.A{actor, "$likes.likedBy"}}}, fields[1].Value)
}

func TestBuildFeedPipelineOwnerJoinIsPublicOnly(t *testing.T) {
	stages := ownerLookupStages("owner")
	lookup := stages[0][0].Value.(bson.D)
	var sub bson.A
	for _, e := range lookup {
		if e.Key == "pipeline" {
			sub = e.Value.(bson.A)
		}
	}
	require.Len(t, sub, 1)
	assert.Equal(t, bson.D{{Key: "$project", Value: ownerProjection()}}, sub[0])
	for _, e := range ownerProjection() {
		assert.NotContains(t, []string{"password", "refreshToken", "email", "watchHistory"}, e.Key)
	}
}

func TestBuildFeedPipelineCommentsAndItemStages(t *testing.T) {
	extra := bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$user"}}}}
	pipeline := BuildFeedPipeline(FeedQuery{
		Pre:           []bson.D{{{Key: "$unwind", Value: "$x"}}},
		CountComments: true,
		ItemStages:    []bson.D{extra},
		Page:          dto.Page{Number: 1, Limit: 5},
	})
	assert.Equal(t, "$unwind", stageOp(t, pipeline[0]))

	items := facetItems(t, pipeline)
	assert.Equal(t, "$lookup", stageOp(t, items[2].(bson.D)))
	assert.Equal(t, bson.D{{Key: "$project", Value: bson.D{{Key: "comments", Value: 0}}}}, items[4])
	assert.Equal(t, extra, items[len(items)-1])
}

func TestVisibleTo(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "isPublished", Value: true}}, visibleTo(bson.ObjectID{}, ""))

	actor := bson.NewObjectID()
	or := visibleTo(actor, "video.")
	assert.Equal(t, "$or", or[0].Key)
	assert.Contains(t, or[0].Value.(bson.A), bson.D{{Key: "video.owner", Value: actor}})
}

func lookupSources(t *testing.T, stages bson.A) []string {
	t.Helper()
	var from []string
	for _, s := range stages {
		stage := s.(bson.D)
		if stageOp(t, stage) != "$lookup" {
			continue
		}
		for _, e := range stage[0].Value.(bson.D) {
			if e.Key == "from" {
				from = append(from, e.Value.(string))
			}
		}
	}
	return from
}

func TestVideoFeedQueryCountsComments(t *testing.T) {
	q := videoFeedQuery(repository.VideoFeedFilter{PublishedOnly: true, Actor: bson.NewObjectID()}, dto.Page{Number: 1, Limit: 10})
	assert.True(t, q.CountComments)

	items := facetItems(t, BuildFeedPipeline(q))
	assert.Equal(t, []string{usersCollection, likesCollection, commentsCollection}, lookupSources(t, items))

	var addsCount, dropsComments bool
	for _, s := range items {
		stage := s.(bson.D)
		fields, _ := stage[0].Value.(bson.D)
		for _, e := range fields {
			if stage[0].Key == "$addFields" && e.Key == "commentsCount" {
				addsCount = true
			}
			if stage[0].Key == "$project" && e.Key == "comments" {
				dropsComments = true
			}
		}
	}
	assert.True(t, addsCount)
	assert.True(t, dropsComments)
}

func TestCommentCountStagesJoinOnVideo(t *testing.T) {
	stages := commentCountStages()
	require.Len(t, stages, 2)
	lookup := stages[0][0].Value.(bson.D)
	assert.Contains(t, lookup, bson.E{Key: "from", Value: commentsCollection})
	assert.Contains(t, lookup, bson.E{Key: "localField", Value: "_id"})
	assert.Contains(t, lookup, bson.E{Key: "foreignField", Value: "video"})
	assert.Equal(t, bson.D{{Key: "$addFields", Value: bson.D{{Key: "commentsCount", Value: bson.D{{Key: "$size", Value: "$comments"}}}}}}, stages[1])
}

func TestBuildFeedPipelineSortEndsWithIDTieBreaker(t *testing.T) {
	for _, field := range []string{"", "_id", "createdAt", "views", "duration", "title", "likedAt"} {
		for _, desc := range []bool{false, true} {
			pipeline := BuildFeedPipeline(FeedQuery{SortField: field, SortDesc: desc, Page: dto.Page{Number: 1, Limit: 10}})
			sort := pipeline[0][0].Value.(bson.D)
			last := sort[len(sort)-1]
			assert.Equal(t, "_id", last.Key, "sortBy=%q", field)
			if field == "" || field == "_id" {
				assert.Len(t, sort, 1, "sortBy=%q", field)
			} else {
				assert.Equal(t, field, sort[0].Key)
				assert.Equal(t, sort[0].Value, last.Value, "tie-breaker follows the sort direction")
			}
		}
	}
}
