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

type ICommentUsecase interface {
	List(ctx context.Context, actorID, videoID string, page, limit int) (*dto.PageResult[dto.CommentFeedItem], error)
	Add(ctx context.Context, actorID, videoID, content string) (*model.Comment, error)
	Update(ctx context.Context, actorID, commentID, content string) (*model.Comment, error)
	Delete(ctx context.Context, actorID, commentID string) error
	WithNotifier(notifier repository.IActivityNotifier) ICommentUsecase
	WithStatsCache(cache repository.IChannelStatsCache) ICommentUsecase
}

type CommentUsecase struct {
	comments   repository.IComment
	videos     repository.IVideo
	likes      repository.ILike
	pagination Pagination
	notifier   repository.IActivityNotifier
	statsCache repository.IChannelStatsCache
}

func NewCommentUsecase(comments repository.IComment, videos repository.IVideo, likes repository.ILike, pagination Pagination) ICommentUsecase {
	return &CommentUsecase{
		comments:   comments,
		videos:     videos,
		likes:      likes,
		pagination: pagination,
		notifier:   noopNotifier{},
	}
}

func (u *CommentUsecase) WithNotifier(notifier repository.IActivityNotifier) ICommentUsecase {
	if notifier != nil {
		u.notifier = notifier
	}
	return u
}

func (u *CommentUsecase) WithStatsCache(cache repository.IChannelStatsCache) ICommentUsecase {
	u.statsCache = cache
	return u
}

func (u *CommentUsecase) List(ctx context.Context, actorID, videoID string, page, limit int) (*dto.PageResult[dto.CommentFeedItem], error) {
	id, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	actor := optionalActor(actorID)
	if _, err := findVisibleVideo(ctx, u.videos, id, actor); err != nil {
		return nil, err
	}
	p := u.pagination.page(page, limit)
	items, total, err := u.comments.Feed(ctx, id, actor, p)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch comments", err)
	}
	return dto.NewPageResult(items, total, p), nil
}

func (u *CommentUsecase) Add(ctx context.Context, actorID, videoID, content string) (*model.Comment, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("Content is required")
	}
	video, err := findVisibleVideo(ctx, u.videos, id, actor)
	if err != nil {
		return nil, err
	}
	comment := &model.Comment{Content: content, Video: video.ID, Owner: actor}
	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, upstream(ctx, "Failed to add comment", err)
	}
	notifyOwner(u.notifier, video.Owner, actor, model.ActivityComment, string(model.LikeTargetVideo), video.ID)
	return comment, nil
}

func (u *CommentUsecase) Update(ctx context.Context, actorID, commentID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("Content is required")
	}
	comment, err := u.ownedComment(ctx, actorID, commentID, "edit")
	if err != nil {
		return nil, err
	}
	updated, err := u.comments.UpdateContent(ctx, comment.ID, content)
	if err != nil {
		return nil, upstream(ctx, "Failed to update comment", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("Comment not found")
	}
	return updated, nil
}

func (u *CommentUsecase) Delete(ctx context.Context, actorID, commentID string) error {
	comment, err := u.ownedComment(ctx, actorID, commentID, "delete")
	if err != nil {
		return err
	}
	if err := u.comments.Delete(ctx, comment.ID); err != nil {
		return upstream(ctx, "Failed to delete comment", err)
	}
	if err := u.likes.DeleteBySubjects(ctx, model.LikeTargetComment, []bson.ObjectID{comment.ID}); err != nil {
		logger.FromContext(ctx).WithField("error", err).WithField("commentId", comment.ID.Hex()).Error("Failed to delete likes of deleted comment")
	}
	invalidateChannelStats(ctx, u.statsCache, comment.Owner)
	return nil
}

func (u *CommentUsecase) ownedComment(ctx context.Context, actorID, commentID, action string) (*model.Comment, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(commentID, "comment")
	if err != nil {
		return nil, err
	}
	comment, err := u.comments.FindByID(ctx, id)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch comment", err)
	}
	if comment == nil {
		return nil, apperror.NotFound("Comment not found")
	}
	if comment.Owner != actor {
		return nil, apperror.Forbidden("You are not allowed to " + action + " this comment")
	}
	return comment, nil
}
