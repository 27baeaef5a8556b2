package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
)

type IDashboardUsecase interface {
	Stats(ctx context.Context, actorID string) (*dto.ChannelStats, error)
	Videos(ctx context.Context, actorID string) ([]model.Video, error)
}

type DashboardUsecase struct {
	videos        repository.IVideo
	likes         repository.ILike
	subscriptions repository.ISubscription
	cache         repository.IChannelStatsCache
	ttl           time.Duration
}

// NewDashboardUsecase builds the dashboard. A nil cache computes stats on every call.
func NewDashboardUsecase(videos repository.IVideo, likes repository.ILike, subscriptions repository.ISubscription, cache repository.IChannelStatsCache, ttl time.Duration) IDashboardUsecase {
	return &DashboardUsecase{videos: videos, likes: likes, subscriptions: subscriptions, cache: cache, ttl: ttl}
}

func (u *DashboardUsecase) Stats(ctx context.Context, actorID string) (*dto.ChannelStats, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx).WithField("channelId", actor.Hex())
	if u.cache != nil {
		cached, err := u.cache.Get(ctx, actor.Hex())
		if err != nil {
			log.WithField("error", err).Warn("Failed to read channel stats from cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	stats := &dto.ChannelStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalVideos, stats.TotalViews, err = u.videos.OwnerTotals(gctx, actor)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalSubscribers, err = u.subscriptions.CountSubscribers(gctx, actor)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalVideoLikes, err = u.likes.CountForOwner(gctx, model.LikeTargetVideo, actor)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalCommentLikes, err = u.likes.CountForOwner(gctx, model.LikeTargetComment, actor)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalTweetLikes, err = u.likes.CountForOwner(gctx, model.LikeTargetTweet, actor)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, upstream(ctx, "Failed to compute channel stats", err)
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, actor.Hex(), stats, u.ttl); err != nil {
			log.WithField("error", err).Warn("Failed to cache channel stats")
		}
	}
	return stats, nil
}

func (u *DashboardUsecase) Videos(ctx context.Context, actorID string) ([]model.Video, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	videos, err := u.videos.ListByOwner(ctx, actor)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch channel videos", err)
	}
	if videos == nil {
		videos = []model.Video{}
	}
	return videos, nil
}
