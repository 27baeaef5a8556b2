package persistence

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"vidtube/domain/dto"
)

// FeedQuery describes one paged feed over a collection.
type FeedQuery struct {
	// Pre runs before filtering and counting, for feeds whose rows come from a join.
	Pre []bson.D
	// Match holds equality filters.
	Match bson.D
	// SearchFields are matched case-insensitively against SearchTerm, any field may hit.
	SearchFields []string
	SearchTerm   string
	// SortField defaults to _id, which is insertion order. _id always breaks ties.
	SortField string
	SortDesc  bool
	Page      dto.Page

	// OwnerField is joined against users and replaced by the public owner summary.
	OwnerField string
	// LikeField is the field of a like document that references rows of this feed.
	LikeField string
	// Actor drives isLiked. The zero id is anonymous.
	Actor         bson.ObjectID
	CountComments bool
	// ItemStages run per page after the joins.
	ItemStages []bson.D
}

// BuildFeedPipeline filters and sorts the whole collection, counts it, and only joins the rows of
// the requested page.
func BuildFeedPipeline(q FeedQuery) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	pipeline = append(pipeline, q.Pre...)

	if match := q.matchStage(); len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	dir := 1
	if q.SortDesc {
		dir = -1
	}
	sort := bson.D{}
	if q.SortField != "" && q.SortField != "_id" {
		sort = append(sort, bson.E{Key: q.SortField, Value: dir})
	}
	sort = append(sort, bson.E{Key: "_id", Value: dir})
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})

	items := bson.A{
		bson.D{{Key: "$skip", Value: q.Page.Skip()}},
		bson.D{{Key: "$limit", Value: int64(q.Page.Limit)}},
	}
	for _, stage := range q.joinStages() {
		items = append(items, stage)
	}
	for _, stage := range q.ItemStages {
		items = append(items, stage)
	}

	pipeline = append(pipeline, bson.D{{Key: "$facet", Value: bson.D{
		{Key: "metadata", Value: bson.A{bson.D{{Key: "$count", Value: "total"}}}},
		{Key: "items", Value: items},
	}}})
	return pipeline
}

func (q FeedQuery) matchStage() bson.D {
	match := bson.D{}
	match = append(match, q.Match...)
	if q.SearchTerm != "" && len(q.SearchFields) > 0 {
		re := bson.Regex{Pattern: regexp.QuoteMeta(q.SearchTerm), Options: "i"}
		or := bson.A{}
		for _, field := range q.SearchFields {
			or = append(or, bson.D{{Key: field, Value: re}})
		}
		match = append(match, bson.E{Key: "$or", Value: or})
	}
	return match
}

func (q FeedQuery) joinStages() []bson.D {
	var stages []bson.D
	var drop bson.D
	if q.OwnerField != "" {
		stages = append(stages, ownerLookupStages(q.OwnerField)...)
	}
	if q.LikeField != "" {
		stages = append(stages, likeStages(q.LikeField, q.Actor)...)
		drop = append(drop, bson.E{Key: "likes", Value: 0})
	}
	if q.CountComments {
		stages = append(stages, commentCountStages()...)
		drop = append(drop, bson.E{Key: "comments", Value: 0})
	}
	if len(drop) > 0 {
		stages = append(stages, bson.D{{Key: "$project", Value: drop}})
	}
	return stages
}

// commentCountStages joins the comment ids of each video row and sets commentsCount.
// The caller drops the joined comments array.
func commentCountStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: commentsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "video"},
			{Key: "as", Value: "comments"},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: bson.D{{Key: "_id", Value: 1}}}}}},
		}}},
		{{Key: "$addFields", Value: bson.D{{Key: "commentsCount", Value: bson.D{{Key: "$size", Value: "$comments"}}}}}},
	}
}

// ownerLookupStages replaces field with the public summary of the referenced user.
func ownerLookupStages(field string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: field},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: field},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: ownerProjection()}}}},
		}}},
		{{Key: "$addFields", Value: bson.D{{Key: field, Value: bson.D{{Key: "$first", Value: "$" + field}}}}}},
	}
}

func ownerProjection() bson.D {
	return bson.D{
		{Key: "username", Value: 1},
		{Key: "fullName", Value: 1},
		{Key: "avatar", Value: 1},
	}
}

func likeStages(likeField string, actor bson.ObjectID) []bson.D {
	var isLiked interface{} = false
	if !actor.IsZero() {
		isLiked = bson.D{{Key: "$in", Value: bson.A{actor, "$likes.likedBy"}}}
	}
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: likesCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: likeField},
			{Key: "as", Value: "likes"},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: bson.D{{Key: "likedBy", Value: 1}}}}}},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "likesCount", Value: bson.D{{Key: "$size", Value: "$likes"}}},
			{Key: "isLiked", Value: isLiked},
		}}},
	}
}

// visibleTo matches videos that are published or owned by actor.
func visibleTo(actor bson.ObjectID, prefix string) bson.D {
	published := bson.D{{Key: prefix + "isPublished", Value: true}}
	if actor.IsZero() {
		return published
	}
	return bson.D{{Key: "$or", Value: bson.A{
		published,
		bson.D{{Key: prefix + "owner", Value: actor}},
	}}}
}

type aggregator interface {
	Aggregate(ctx context.Context, pipeline interface{}, opts ...options.Lister[options.AggregateOptions]) (*mongo.Cursor, error)
}

type feedFacet[T any] struct {
	Metadata []struct {
		Total int64 `bson:"total"`
	} `bson:"metadata"`
	Items []T `bson:"items"`
}

// runFeed executes a pipeline built by BuildFeedPipeline.
func runFeed[T any](ctx context.Context, coll aggregator, q FeedQuery) ([]T, int64, error) {
	cursor, err := coll.Aggregate(ctx, BuildFeedPipeline(q))
	if err != nil {
		return nil, 0, err
	}
	defer closeCursor(ctx, cursor)

	var facets []feedFacet[T]
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, 0, err
	}
	if len(facets) == 0 {
		return []T{}, 0, nil
	}
	facet := facets[0]
	var total int64
	if len(facet.Metadata) > 0 {
		total = facet.Metadata[0].Total
	}
	if facet.Items == nil {
		facet.Items = []T{}
	}
	return facet.Items, total, nil
}
