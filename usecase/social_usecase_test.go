package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/usecase"
)

func TestLikeUsecase_ToggleVideoLikeGatesUnpublished(t *testing.T) {
	likes, videos := new(MockLikeRepository), new(MockVideoRepository)
	uc := usecase.NewLikeUsecase(likes, videos, new(MockCommentRepository), new(MockTweetRepository), testPagination)
	video := &model.Video{ID: bson.NewObjectID(), Owner: bson.NewObjectID()}
	videos.On("FindByID", mock.Anything, video.ID).Return(video, nil)

	_, err := uc.ToggleVideoLike(context.Background(), bson.NewObjectID().Hex(), video.ID.Hex())

	assert.True(t, apperror.IsStatus(err, http.StatusNotFound))
	likes.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLikeUsecase_ToggleRequiresActorBeforeLookup(t *testing.T) {
	videos := new(MockVideoRepository)
	uc := usecase.NewLikeUsecase(new(MockLikeRepository), videos, new(MockCommentRepository), new(MockTweetRepository), testPagination)

	_, err := uc.ToggleVideoLike(context.Background(), "", bson.NewObjectID().Hex())

	assert.True(t, apperror.IsStatus(err, http.StatusUnauthorized))
	videos.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestLikeUsecase_ToggleVideoLikeNotifiesOwnerOnLike(t *testing.T) {
	likes, videos, notifier := new(MockLikeRepository), new(MockVideoRepository), new(MockNotifier)
	uc := usecase.NewLikeUsecase(likes, videos, new(MockCommentRepository), new(MockTweetRepository), testPagination).
		WithNotifier(notifier)
	actor := bson.NewObjectID()
	video := &model.Video{ID: bson.NewObjectID(), Owner: bson.NewObjectID(), IsPublished: true}
	like := model.NewLike(model.LikeTargetVideo, video.ID, actor)
	videos.On("FindByID", mock.Anything, video.ID).Return(video, nil)
	likes.On("Toggle", mock.Anything, model.LikeTargetVideo, video.ID, actor).Return(like, true, nil).Once()
	likes.On("Toggle", mock.Anything, model.LikeTargetVideo, video.ID, actor).Return(nil, false, nil).Once()
	notifier.On("Notify", video.Owner.Hex(), mock.MatchedBy(func(e model.ActivityEvent) bool {
		return e.Type == model.ActivityLike && e.SubjectID == video.ID.Hex() && e.ActorID == actor.Hex()
	})).Return().Once()

	first, err := uc.ToggleVideoLike(context.Background(), actor.Hex(), video.ID.Hex())
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, like, first.Like)

	second, err := uc.ToggleVideoLike(context.Background(), actor.Hex(), video.ID.Hex())
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Nil(t, second.Like)

	notifier.AssertExpectations(t)
}

func TestLikeUsecase_ToggleCommentOnHiddenVideo(t *testing.T) {
	comments, videos := new(MockCommentRepository), new(MockVideoRepository)
	uc := usecase.NewLikeUsecase(new(MockLikeRepository), videos, comments, new(MockTweetRepository), testPagination)
	video := &model.Video{ID: bson.NewObjectID(), Owner: bson.NewObjectID()}
	comment := &model.Comment{ID: bson.NewObjectID(), Video: video.ID, Owner: video.Owner}
	comments.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
	videos.On("FindByID", mock.Anything, video.ID).Return(video, nil)

	_, err := uc.ToggleCommentLike(context.Background(), bson.NewObjectID().Hex(), comment.ID.Hex())

	require.Error(t, err)
	assert.Equal(t, "Comment not found", apperror.From(err).Message)
}

func TestLikeUsecase_ToggleTweetLikeMissing(t *testing.T) {
	tweets := new(MockTweetRepository)
	uc := usecase.NewLikeUsecase(new(MockLikeRepository), new(MockVideoRepository), new(MockCommentRepository), tweets, testPagination)
	id := bson.NewObjectID()
	tweets.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := uc.ToggleTweetLike(context.Background(), bson.NewObjectID().Hex(), id.Hex())

	assert.True(t, apperror.IsStatus(err, http.StatusNotFound))
}

func TestLikeUsecase_LikedVideosEmptyIsSuccess(t *testing.T) {
	likes := new(MockLikeRepository)
	uc := usecase.NewLikeUsecase(likes, new(MockVideoRepository), new(MockCommentRepository), new(MockTweetRepository), testPagination)
	actor := bson.NewObjectID()
	likes.On("LikedVideos", mock.Anything, actor, dto.Page{Number: 1, Limit: 10}).Return(nil, int64(0), nil)

	res, err := uc.LikedVideos(context.Background(), actor.Hex(), 0, 0)

	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.TotalPages)
}

func TestSubscriptionUsecase_SelfSubscribe(t *testing.T) {
	subs := new(MockSubscriptionRepository)
	uc := usecase.NewSubscriptionUsecase(subs, new(MockUserRepository), nil, testPagination)
	actor := bson.NewObjectID()

	_, err := uc.Toggle(context.Background(), actor.Hex(), actor.Hex())

	require.Error(t, err)
	assert.True(t, apperror.IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, "You cannot subscribe to your own channel", apperror.From(err).Message)
	subs.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscriptionUsecase_ToggleTwiceRestoresState(t *testing.T) {
	subs, users, cache, notifier := new(MockSubscriptionRepository), new(MockUserRepository), new(MockStatsCache), new(MockNotifier)
	uc := usecase.NewSubscriptionUsecase(subs, users, cache, testPagination).WithNotifier(notifier)
	actor, channel := bson.NewObjectID(), bson.NewObjectID()
	subscription := &model.Subscription{ID: bson.NewObjectID(), Subscriber: actor, Channel: channel}
	users.On("FindByID", mock.Anything, channel).Return(&model.User{ID: channel}, nil)
	cache.On("Invalidate", mock.Anything, channel.Hex()).Return(nil)
	subs.On("Toggle", mock.Anything, actor, channel).Return(subscription, true, nil).Once()
	subs.On("Toggle", mock.Anything, actor, channel).Return(nil, false, nil).Once()
	notifier.On("Notify", channel.Hex(), mock.Anything).Return().Once()

	first, err := uc.Toggle(context.Background(), actor.Hex(), channel.Hex())
	require.NoError(t, err)
	second, err := uc.Toggle(context.Background(), actor.Hex(), channel.Hex())
	require.NoError(t, err)

	assert.True(t, first.Subscribed)
	assert.False(t, second.Subscribed)
	assert.Nil(t, second.Subscription)
	cache.AssertNumberOfCalls(t, "Invalidate", 2)
	notifier.AssertExpectations(t)
}

func TestSubscriptionUsecase_UnknownChannel(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecase.NewSubscriptionUsecase(new(MockSubscriptionRepository), users, nil, testPagination)
	channel := bson.NewObjectID()
	users.On("FindByID", mock.Anything, channel).Return(nil, nil)

	_, err := uc.Subscribers(context.Background(), channel.Hex(), 1, 10)

	require.Error(t, err)
	assert.Equal(t, "Channel does not exist", apperror.From(err).Message)
}

func TestCommentUsecase_AddNotifiesVideoOwner(t *testing.T) {
	comments, videos, notifier := new(MockCommentRepository), new(MockVideoRepository), new(MockNotifier)
	uc := usecase.NewCommentUsecase(comments, videos, new(MockLikeRepository), testPagination).WithNotifier(notifier)
	actor := bson.NewObjectID()
	video := &model.Video{ID: bson.NewObjectID(), Owner: bson.NewObjectID(), IsPublished: true}
	videos.On("FindByID", mock.Anything, video.ID).Return(video, nil)
	comments.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
	notifier.On("Notify", video.Owner.Hex(), mock.MatchedBy(func(e model.ActivityEvent) bool {
		return e.Type == model.ActivityComment
	})).Return()

	comment, err := uc.Add(context.Background(), actor.Hex(), video.ID.Hex(), "  nice  ")

	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Content)
	notifier.AssertExpectations(t)
}

func TestCommentUsecase_UpdateRequiresOwner(t *testing.T) {
	comments := new(MockCommentRepository)
	uc := usecase.NewCommentUsecase(comments, new(MockVideoRepository), new(MockLikeRepository), testPagination)
	comment := &model.Comment{ID: bson.NewObjectID(), Owner: bson.NewObjectID()}
	comments.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)

	_, err := uc.Update(context.Background(), bson.NewObjectID().Hex(), comment.ID.Hex(), "edited")

	assert.True(t, apperror.IsStatus(err, http.StatusForbidden))
}

func TestCommentUsecase_DeleteRemovesLikes(t *testing.T) {
	comments, likes := new(MockCommentRepository), new(MockLikeRepository)
	uc := usecase.NewCommentUsecase(comments, new(MockVideoRepository), likes, testPagination)
	owner := bson.NewObjectID()
	comment := &model.Comment{ID: bson.NewObjectID(), Owner: owner}
	comments.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
	comments.On("Delete", mock.Anything, comment.ID).Return(nil)
	likes.On("DeleteBySubjects", mock.Anything, model.LikeTargetComment, []bson.ObjectID{comment.ID}).Return(nil)

	require.NoError(t, uc.Delete(context.Background(), owner.Hex(), comment.ID.Hex()))
	likes.AssertExpectations(t)
}

func TestTweetUsecase_UserTweetsUnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecase.NewTweetUsecase(new(MockTweetRepository), users, new(MockLikeRepository), testPagination)
	id := bson.NewObjectID()
	users.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := uc.UserTweets(context.Background(), "", id.Hex(), 1, 10)

	assert.True(t, apperror.IsStatus(err, http.StatusNotFound))
}

func TestTweetUsecase_CreateValidatesContent(t *testing.T) {
	uc := usecase.NewTweetUsecase(new(MockTweetRepository), new(MockUserRepository), new(MockLikeRepository), testPagination)

	_, err := uc.Create(context.Background(), bson.NewObjectID().Hex(), "   ")

	assert.True(t, apperror.IsStatus(err, http.StatusBadRequest))
}

func TestTweetUsecase_DeleteRequiresOwner(t *testing.T) {
	tweets := new(MockTweetRepository)
	uc := usecase.NewTweetUsecase(tweets, new(MockUserRepository), new(MockLikeRepository), testPagination)
	tweet := &model.Tweet{ID: bson.NewObjectID(), Owner: bson.NewObjectID()}
	tweets.On("FindByID", mock.Anything, tweet.ID).Return(tweet, nil)

	err := uc.Delete(context.Background(), bson.NewObjectID().Hex(), tweet.ID.Hex())

	assert.True(t, apperror.IsStatus(err, http.StatusForbidden))
	tweets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLikeUsecase_ToggleInvalidatesOwnerStats(t *testing.T) {
	likes, tweets, cache := new(MockLikeRepository), new(MockTweetRepository), new(MockStatsCache)
	uc := usecase.NewLikeUsecase(likes, new(MockVideoRepository), new(MockCommentRepository), tweets, testPagination).
		WithStatsCache(cache)
	actor := bson.NewObjectID()
	tweet := &model.Tweet{ID: bson.NewObjectID(), Owner: bson.NewObjectID()}
	tweets.On("FindByID", mock.Anything, tweet.ID).Return(tweet, nil)
	likes.On("Toggle", mock.Anything, model.LikeTargetTweet, tweet.ID, actor).
		Return(model.NewLike(model.LikeTargetTweet, tweet.ID, actor), true, nil).Once()
	likes.On("Toggle", mock.Anything, model.LikeTargetTweet, tweet.ID, actor).Return(nil, false, nil).Once()
	cache.On("Invalidate", mock.Anything, tweet.Owner.Hex()).Return(nil)

	_, err := uc.ToggleTweetLike(context.Background(), actor.Hex(), tweet.ID.Hex())
	require.NoError(t, err)
	_, err = uc.ToggleTweetLike(context.Background(), actor.Hex(), tweet.ID.Hex())
	require.NoError(t, err)

	cache.AssertNumberOfCalls(t, "Invalidate", 2)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, actor.Hex())
}

func TestLikeUsecase_FailedToggleKeepsStats(t *testing.T) {
	likes, tweets, cache := new(MockLikeRepository), new(MockTweetRepository), new(MockStatsCache)
	uc := usecase.NewLikeUsecase(likes, new(MockVideoRepository), new(MockCommentRepository), tweets, testPagination).
		WithStatsCache(cache)
	actor := bson.NewObjectID()
	tweet := &model.Tweet{ID: bson.NewObjectID(), Owner: bson.NewObjectID()}
	tweets.On("FindByID", mock.Anything, tweet.ID).Return(tweet, nil)
	likes.On("Toggle", mock.Anything, model.LikeTargetTweet, tweet.ID, actor).Return(nil, false, assert.AnError)

	_, err := uc.ToggleTweetLike(context.Background(), actor.Hex(), tweet.ID.Hex())

	assert.True(t, apperror.IsStatus(err, http.StatusInternalServerError))
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestCommentUsecase_DeleteInvalidatesOwnerStats(t *testing.T) {
	comments, likes, cache := new(MockCommentRepository), new(MockLikeRepository), new(MockStatsCache)
	uc := usecase.NewCommentUsecase(comments, new(MockVideoRepository), likes, testPagination).WithStatsCache(cache)
	owner := bson.NewObjectID()
	comment := &model.Comment{ID: bson.NewObjectID(), Owner: owner}
	comments.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
	comments.On("Delete", mock.Anything, comment.ID).Return(nil)
	likes.On("DeleteBySubjects", mock.Anything, model.LikeTargetComment, []bson.ObjectID{comment.ID}).Return(nil)
	cache.On("Invalidate", mock.Anything, owner.Hex()).Return(nil).Once()

	require.NoError(t, uc.Delete(context.Background(), owner.Hex(), comment.ID.Hex()))
	cache.AssertExpectations(t)
}

func TestTweetUsecase_DeleteInvalidatesOwnerStats(t *testing.T) {
	tweets, likes, cache := new(MockTweetRepository), new(MockLikeRepository), new(MockStatsCache)
	uc := usecase.NewTweetUsecase(tweets, new(MockUserRepository), likes, testPagination).WithStatsCache(cache)
	owner := bson.NewObjectID()
	tweet := &model.Tweet{ID: bson.NewObjectID(), Owner: owner}
	tweets.On("FindByID", mock.Anything, tweet.ID).Return(tweet, nil)
	tweets.On("Delete", mock.Anything, tweet.ID).Return(nil)
	likes.On("DeleteBySubjects", mock.Anything, model.LikeTargetTweet, []bson.ObjectID{tweet.ID}).Return(nil)
	cache.On("Invalidate", mock.Anything, owner.Hex()).Return(nil).Once()

	require.NoError(t, uc.Delete(context.Background(), owner.Hex(), tweet.ID.Hex()))
	cache.AssertExpectations(t)
}
