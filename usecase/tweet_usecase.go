package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
)

type ITweetUsecase interface {
	Create(ctx context.Context, actorID, content string) (*model.Tweet, error)
	UserTweets(ctx context.Context, actorID, userID string, page, limit int) (*dto.PageResult[dto.TweetFeedItem], error)
	Update(ctx context.Context, actorID, tweetID, content string) (*model.Tweet, error)
	Delete(ctx context.Context, actorID, tweetID string) error
	WithStatsCache(cache repository.IChannelStatsCache) ITweetUsecase
}

type TweetUsecase struct {
	tweets     repository.ITweet
	users      repository.IUser
	likes      repository.ILike
	pagination Pagination
	statsCache repository.IChannelStatsCache
}

func NewTweetUsecase(tweets repository.ITweet, users repository.IUser, likes repository.ILike, pagination Pagination) ITweetUsecase {
	return &TweetUsecase{tweets: tweets, users: users, likes: likes, pagination: pagination}
}

func (u *TweetUsecase) WithStatsCache(cache repository.IChannelStatsCache) ITweetUsecase {
	u.statsCache = cache
	return u
}

func (u *TweetUsecase) Create(ctx context.Context, actorID, content string) (*model.Tweet, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("Content is required")
	}
	tweet := &model.Tweet{Content: content, Owner: actor}
	if err := u.tweets.Create(ctx, tweet); err != nil {
		return nil, upstream(ctx, "Failed to create tweet", err)
	}
	return tweet, nil
}

func (u *TweetUsecase) UserTweets(ctx context.Context, actorID, userID string, page, limit int) (*dto.PageResult[dto.TweetFeedItem], error) {
	owner, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, u.users, owner); err != nil {
		return nil, err
	}
	p := u.pagination.page(page, limit)
	items, total, err := u.tweets.Feed(ctx, owner, optionalActor(actorID), p)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch tweets", err)
	}
	return dto.NewPageResult(items, total, p), nil
}

func (u *TweetUsecase) Update(ctx context.Context, actorID, tweetID, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("Content is required")
	}
	tweet, err := u.ownedTweet(ctx, actorID, tweetID, "edit")
	if err != nil {
		return nil, err
	}
	updated, err := u.tweets.UpdateContent(ctx, tweet.ID, content)
	if err != nil {
		return nil, upstream(ctx, "Failed to update tweet", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("Tweet not found")
	}
	return updated, nil
}

func (u *TweetUsecase) Delete(ctx context.Context, actorID, tweetID string) error {
	tweet, err := u.ownedTweet(ctx, actorID, tweetID, "delete")
	if err != nil {
		return err
	}
	if err := u.tweets.Delete(ctx, tweet.ID); err != nil {
		return upstream(ctx, "Failed to delete tweet", err)
	}
	if err := u.likes.DeleteBySubjects(ctx, model.LikeTargetTweet, []bson.ObjectID{tweet.ID}); err != nil {
		logger.FromContext(ctx).WithField("error", err).WithField("tweetId", tweet.ID.Hex()).Error("Failed to delete likes of deleted tweet")
	}
	invalidateChannelStats(ctx, u.statsCache, tweet.Owner)
	return nil
}

func (u *TweetUsecase) ownedTweet(ctx context.Context, actorID, tweetID, action string) (*model.Tweet, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(tweetID, "tweet")
	if err != nil {
		return nil, err
	}
	tweet, err := u.tweets.FindByID(ctx, id)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch tweet", err)
	}
	if tweet == nil {
		return nil, apperror.NotFound("Tweet not found")
	}
	if tweet.Owner != actor {
		return nil, apperror.Forbidden("You are not allowed to " + action + " this tweet")
	}
	return tweet, nil
}

// requireUser fails with 404 when id names no user.
func requireUser(ctx context.Context, users repository.IUser, id bson.ObjectID) error {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return upstream(ctx, "Failed to look up user", err)
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}
	return nil
}
