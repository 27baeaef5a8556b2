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

type ISubscriptionUsecase interface {
	Toggle(ctx context.Context, actorID, channelID string) (*dto.ToggleSubscriptionResult, error)
	Subscribers(ctx context.Context, channelID string, page, limit int) (*dto.PageResult[dto.ChannelItem], error)
	SubscribedChannels(ctx context.Context, subscriberID string, page, limit int) (*dto.PageResult[dto.ChannelItem], error)
	WithNotifier(notifier repository.IActivityNotifier) ISubscriptionUsecase
}

type SubscriptionUsecase struct {
	subscriptions repository.ISubscription
	users         repository.IUser
	statsCache    repository.IChannelStatsCache
	pagination    Pagination
	notifier      repository.IActivityNotifier
}

func NewSubscriptionUsecase(subscriptions repository.ISubscription, users repository.IUser, statsCache repository.IChannelStatsCache, pagination Pagination) ISubscriptionUsecase {
	return &SubscriptionUsecase{
		subscriptions: subscriptions,
		users:         users,
		statsCache:    statsCache,
		pagination:    pagination,
		notifier:      noopNotifier{},
	}
}

func (u *SubscriptionUsecase) WithNotifier(notifier repository.IActivityNotifier) ISubscriptionUsecase {
	if notifier != nil {
		u.notifier = notifier
	}
	return u
}

func (u *SubscriptionUsecase) Toggle(ctx context.Context, actorID, channelID string) (*dto.ToggleSubscriptionResult, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	channel, err := parseID(channelID, "channel")
	if err != nil {
		return nil, err
	}
	if channel == actor {
		return nil, apperror.Validation("You cannot subscribe to your own channel")
	}
	if err := requireChannel(ctx, u.users, channel); err != nil {
		return nil, err
	}

	subscription, subscribed, err := u.subscriptions.Toggle(ctx, actor, channel)
	if err != nil {
		return nil, upstream(ctx, "Failed to toggle subscription", err)
	}
	invalidateChannelStats(ctx, u.statsCache, channel)
	if subscribed {
		notifyOwner(u.notifier, channel, actor, model.ActivitySubscription, "channel", channel)
	}
	return &dto.ToggleSubscriptionResult{Subscribed: subscribed, Subscription: subscription}, nil
}

func (u *SubscriptionUsecase) Subscribers(ctx context.Context, channelID string, page, limit int) (*dto.PageResult[dto.ChannelItem], error) {
	channel, err := parseID(channelID, "channel")
	if err != nil {
		return nil, err
	}
	if err := requireChannel(ctx, u.users, channel); err != nil {
		return nil, err
	}
	p := u.pagination.page(page, limit)
	items, total, err := u.subscriptions.Subscribers(ctx, channel, p)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch subscribers", err)
	}
	return dto.NewPageResult(items, total, p), nil
}

func (u *SubscriptionUsecase) SubscribedChannels(ctx context.Context, subscriberID string, page, limit int) (*dto.PageResult[dto.ChannelItem], error) {
	subscriber, err := parseID(subscriberID, "subscriber")
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, u.users, subscriber); err != nil {
		return nil, err
	}
	p := u.pagination.page(page, limit)
	items, total, err := u.subscriptions.SubscribedChannels(ctx, subscriber, p)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch subscribed channels", err)
	}
	return dto.NewPageResult(items, total, p), nil
}

// requireChannel is requireUser with channel wording.
func requireChannel(ctx context.Context, users repository.IUser, id bson.ObjectID) error {
	if err := requireUser(ctx, users, id); err != nil {
		if apperror.IsStatus(err, http.StatusNotFound) {
			return apperror.NotFound("Channel does not exist")
		}
		return err
	}
	return nil
}
