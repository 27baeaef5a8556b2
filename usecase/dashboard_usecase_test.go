package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/usecase"
)

func TestDashboardUsecase_StatsComputesAndCaches(t *testing.T) {
	videos, likes, subs, cache := new(MockVideoRepository), new(MockLikeRepository), new(MockSubscriptionRepository), new(MockStatsCache)
	uc := usecase.NewDashboardUsecase(videos, likes, subs, cache, time.Minute)
	actor := bson.NewObjectID()
	cache.On("Get", mock.Anything, actor.Hex()).Return(nil, nil)
	videos.On("OwnerTotals", mock.Anything, actor).Return(int64(2), int64(40), nil)
	subs.On("CountSubscribers", mock.Anything, actor).Return(int64(5), nil)
	likes.On("CountForOwner", mock.Anything, model.LikeTargetVideo, actor).Return(int64(7), nil)
	likes.On("CountForOwner", mock.Anything, model.LikeTargetComment, actor).Return(int64(1), nil)
	likes.On("CountForOwner", mock.Anything, model.LikeTargetTweet, actor).Return(int64(3), nil)
	expected := &dto.ChannelStats{
		TotalVideos:       2,
		TotalViews:        40,
		TotalSubscribers:  5,
		TotalVideoLikes:   7,
		TotalCommentLikes: 1,
		TotalTweetLikes:   3,
	}
	cache.On("Set", mock.Anything, actor.Hex(), expected, time.Minute).Return(nil)

	stats, err := uc.Stats(context.Background(), actor.Hex())

	require.NoError(t, err)
	assert.Equal(t, expected, stats)
	cache.AssertExpectations(t)
}

func TestDashboardUsecase_StatsCacheHit(t *testing.T) {
	videos, cache := new(MockVideoRepository), new(MockStatsCache)
	uc := usecase.NewDashboardUsecase(videos, new(MockLikeRepository), new(MockSubscriptionRepository), cache, time.Minute)
	actor := bson.NewObjectID()
	cached := &dto.ChannelStats{TotalVideos: 9}
	cache.On("Get", mock.Anything, actor.Hex()).Return(cached, nil)

	stats, err := uc.Stats(context.Background(), actor.Hex())

	require.NoError(t, err)
	assert.Same(t, cached, stats)
	videos.AssertNotCalled(t, "OwnerTotals", mock.Anything, mock.Anything)
}

func TestDashboardUsecase_StatsIgnoresCacheFailures(t *testing.T) {
	videos, likes, subs, cache := new(MockVideoRepository), new(MockLikeRepository), new(MockSubscriptionRepository), new(MockStatsCache)
	uc := usecase.NewDashboardUsecase(videos, likes, subs, cache, time.Minute)
	actor := bson.NewObjectID()
	cache.On("Get", mock.Anything, actor.Hex()).Return(nil, errors.New("redis down"))
	cache.On("Set", mock.Anything, actor.Hex(), mock.Anything, time.Minute).Return(errors.New("redis down"))
	videos.On("OwnerTotals", mock.Anything, actor).Return(int64(0), int64(0), nil)
	subs.On("CountSubscribers", mock.Anything, actor).Return(int64(0), nil)
	likes.On("CountForOwner", mock.Anything, mock.Anything, actor).Return(int64(0), nil)

	stats, err := uc.Stats(context.Background(), actor.Hex())

	require.NoError(t, err)
	assert.Equal(t, &dto.ChannelStats{}, stats)
}

func TestDashboardUsecase_VideosEmpty(t *testing.T) {
	videos := new(MockVideoRepository)
	uc := usecase.NewDashboardUsecase(videos, new(MockLikeRepository), new(MockSubscriptionRepository), nil, time.Minute)
	actor := bson.NewObjectID()
	videos.On("ListByOwner", mock.Anything, actor).Return(nil, nil)

	res, err := uc.Videos(context.Background(), actor.Hex())

	require.NoError(t, err)
	assert.Equal(t, []model.Video{}, res)
}

func TestHealthcheckUsecase_Check(t *testing.T) {
	store := new(MockHealth)
	uc := usecase.NewHealthcheckUsecase(store)
	store.On("Ping", mock.Anything).Return(nil).Once()
	store.On("Ping", mock.Anything).Return(errors.New("no reachable servers")).Once()

	assert.Equal(t, "up", uc.Check(context.Background()).Database)
	down := uc.Check(context.Background())
	assert.Equal(t, "OK", down.Status)
	assert.Equal(t, "down", down.Database)
}
