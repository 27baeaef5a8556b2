package usecase

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type ILikeUsecase interface {
	ToggleVideoLike(ctx context.Context, actorID, videoID string) (*dto.ToggleLikeResult, error)
	ToggleCommentLike(ctx context.Context, actorID, commentID string) (*dto.ToggleLikeResult, error)
	ToggleTweetLike(ctx context.Context, actorID, tweetID string) (*dto.ToggleLikeResult, error)
	LikedVideos(ctx context.Context, actorID string, page, limit int) (*dto.PageResult[dto.VideoFeedItem], error)
	WithNotifier(notifier repository.IActivityNotifier) ILikeUsecase
	WithStatsCache(cache repository.IChannelStatsCache) ILikeUsecase
}

type LikeUsecase struct {
	likes      repository.ILike
	videos     repository.IVideo
	comments   repository.IComment
	tweets     repository.ITweet
	pagination Pagination
	notifier   repository.IActivityNotifier
	statsCache repository.IChannelStatsCache
}

func NewLikeUsecase(likes repository.ILike, videos repository.IVideo, comments repository.IComment, tweets repository.ITweet, pagination Pagination) ILikeUsecase {
	return &LikeUsecase{
		likes:      likes,
		videos:     videos,
		comments:   comments,
		tweets:     tweets,
		pagination: pagination,
		notifier:   noopNotifier{},
	}
}

func (u *LikeUsecase) WithNotifier(notifier repository.IActivityNotifier) ILikeUsecase {
	if notifier != nil {
		u.notifier = notifier
	}
	return u
}

// WithStatsCache makes like toggles drop the subject owner's cached dashboard stats.
func (u *LikeUsecase) WithStatsCache(cache repository.IChannelStatsCache) ILikeUsecase {
	u.statsCache = cache
	return u
}

func (u *LikeUsecase) ToggleVideoLike(ctx context.Context, actorID, videoID string) (*dto.ToggleLikeResult, error) {
	return u.toggle(ctx, actorID, videoID, model.LikeTargetVideo, func(id, actor bson.ObjectID) (bson.ObjectID, error) {
		video, err := findVisibleVideo(ctx, u.videos, id, actor)
		if err != nil {
			return bson.ObjectID{}, err
		}
		return video.Owner, nil
	})
}

// ToggleCommentLike treats a comment on a video the actor cannot see as missing.
func (u *LikeUsecase) ToggleCommentLike(ctx context.Context, actorID, commentID string) (*dto.ToggleLikeResult, error) {
	return u.toggle(ctx, actorID, commentID, model.LikeTargetComment, func(id, actor bson.ObjectID) (bson.ObjectID, error) {
		comment, err := u.comments.FindByID(ctx, id)
		if err != nil {
			return bson.ObjectID{}, upstream(ctx, "Failed to fetch comment", err)
		}
		if comment == nil {
			return bson.ObjectID{}, apperror.NotFound("Comment not found")
		}
		if _, err := findVisibleVideo(ctx, u.videos, comment.Video, actor); err != nil {
			if apperror.IsStatus(err, http.StatusNotFound) {
				return bson.ObjectID{}, apperror.NotFound("Comment not found")
			}
			return bson.ObjectID{}, err
		}
		return comment.Owner, nil
	})
}

func (u *LikeUsecase) ToggleTweetLike(ctx context.Context, actorID, tweetID string) (*dto.ToggleLikeResult, error) {
	return u.toggle(ctx, actorID, tweetID, model.LikeTargetTweet, func(id, _ bson.ObjectID) (bson.ObjectID, error) {
		tweet, err := u.tweets.FindByID(ctx, id)
		if err != nil {
			return bson.ObjectID{}, upstream(ctx, "Failed to fetch tweet", err)
		}
		if tweet == nil {
			return bson.ObjectID{}, apperror.NotFound("Tweet not found")
		}
		return tweet.Owner, nil
	})
}

// toggle checks the actor, resolves the subject owner through lookup, then flips the like.
func (u *LikeUsecase) toggle(
	ctx context.Context,
	actorID, subjectID string,
	target model.LikeTarget,
	lookup func(id, actor bson.ObjectID) (bson.ObjectID, error),
) (*dto.ToggleLikeResult, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(subjectID, string(target))
	if err != nil {
		return nil, err
	}
	owner, err := lookup(id, actor)
	if err != nil {
		return nil, err
	}
	like, liked, err := u.likes.Toggle(ctx, target, id, actor)
	if err != nil {
		return nil, upstream(ctx, "Failed to toggle like", err)
	}
	invalidateChannelStats(ctx, u.statsCache, owner)
	if liked {
		notifyOwner(u.notifier, owner, actor, model.ActivityLike, string(target), id)
	}
	return &dto.ToggleLikeResult{Liked: liked, Like: like}, nil
}

func (u *LikeUsecase) LikedVideos(ctx context.Context, actorID string, page, limit int) (*dto.PageResult[dto.VideoFeedItem], error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	p := u.pagination.page(page, limit)
	items, total, err := u.likes.LikedVideos(ctx, actor, p)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch liked videos", err)
	}
	return dto.NewPageResult(items, total, p), nil
}
