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

// videoSortFields maps accepted sortBy values to stored fields.
var videoSortFields = map[string]string{
	"createdAt": "createdAt",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

type IVideoUsecase interface {
	List(ctx context.Context, actorID string, query dto.VideoListQuery) (*dto.PageResult[dto.VideoFeedItem], error)
	Publish(ctx context.Context, actorID string, in dto.PublishVideoInput) (*model.Video, error)
	Get(ctx context.Context, actorID, videoID string) (*dto.VideoFeedItem, error)
	Update(ctx context.Context, actorID, videoID string, in dto.UpdateVideoInput) (*model.Video, error)
	Delete(ctx context.Context, actorID, videoID string) error
	TogglePublish(ctx context.Context, actorID, videoID string) (*model.Video, error)
}

type VideoDeps struct {
	Videos       repository.IVideo
	Users        repository.IUser
	Comments     repository.IComment
	Likes        repository.ILike
	Playlists    repository.IPlaylist
	Media        repository.IMediaStorage
	Events       repository.IEventPublisher
	StatsCache   repository.IChannelStatsCache
	Pagination   Pagination
	HistoryLimit int
}

type VideoUsecase struct {
	VideoDeps
}

func NewVideoUsecase(deps VideoDeps) IVideoUsecase {
	return &VideoUsecase{VideoDeps: deps}
}

func (u *VideoUsecase) List(ctx context.Context, actorID string, query dto.VideoListQuery) (*dto.PageResult[dto.VideoFeedItem], error) {
	actor := optionalActor(actorID)
	filter := repository.VideoFeedFilter{
		Query:         strings.TrimSpace(query.Query),
		PublishedOnly: true,
		Actor:         actor,
	}
	if query.SortBy != "" {
		field, ok := videoSortFields[query.SortBy]
		if !ok {
			return nil, apperror.Validation("Invalid sortBy").WithDetail("sortBy must be one of createdAt, views, duration, title")
		}
		filter.SortBy = field
	}
	switch strings.ToLower(query.SortType) {
	case "", "asc":
	case "desc":
		filter.SortDesc = true
	default:
		return nil, apperror.Validation("Invalid sortType").WithDetail("sortType must be asc or desc")
	}
	if query.UserID != "" {
		owner, err := parseID(query.UserID, "user")
		if err != nil {
			return nil, err
		}
		filter.Owner = owner
		filter.PublishedOnly = owner != actor
	}

	page := u.Pagination.page(query.Page, query.Limit)
	items, total, err := u.Videos.Feed(ctx, filter, page)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch videos", err)
	}
	return dto.NewPageResult(items, total, page), nil
}

func (u *VideoUsecase) Publish(ctx context.Context, actorID string, in dto.PublishVideoInput) (*model.Video, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, apperror.Validation("Title and description are required")
	}
	if in.VideoPath == "" {
		return nil, apperror.Validation("Video file is required")
	}
	if in.ThumbnailPath == "" {
		return nil, apperror.Validation("Thumbnail is required")
	}

	videoAsset, err := u.Media.Upload(ctx, in.VideoPath, model.MediaKindVideo)
	if err != nil {
		return nil, mediaError(ctx, "video", err)
	}
	thumbnail, err := u.Media.Upload(ctx, in.ThumbnailPath, model.MediaKindImage)
	if err != nil {
		deleteMedia(ctx, u.Media, videoAsset.URL)
		return nil, mediaError(ctx, "thumbnail", err)
	}

	video := &model.Video{
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbnail.URL,
		Owner:       actor,
		Title:       title,
		Description: description,
		Duration:    videoAsset.Duration,
		IsPublished: in.IsPublished,
	}
	if err := u.Videos.Create(ctx, video); err != nil {
		deleteMedia(ctx, u.Media, videoAsset.URL, thumbnail.URL)
		return nil, upstream(ctx, "Failed to publish video", err)
	}
	u.invalidateStats(ctx, actor)
	publishEvent(ctx, u.Events, model.EventVideoPublished, video.ID, actor)
	return video, nil
}

func (u *VideoUsecase) Get(ctx context.Context, actorID, videoID string) (*dto.VideoFeedItem, error) {
	id, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	actor := optionalActor(actorID)
	if _, err := findVisibleVideo(ctx, u.Videos, id, actor); err != nil {
		return nil, err
	}

	if err := u.Videos.IncrementViews(ctx, id); err != nil {
		return nil, upstream(ctx, "Failed to record view", err)
	}
	if !actor.IsZero() {
		if err := u.Users.PushWatchHistory(ctx, actor, id, u.HistoryLimit); err != nil {
			logger.FromContext(ctx).WithField("error", err).Warn("Failed to record watch history")
		}
	}

	detail, err := u.Videos.Detail(ctx, id, actor)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch video", err)
	}
	if detail == nil {
		return nil, apperror.NotFound("Video not found")
	}
	return detail, nil
}

func (u *VideoUsecase) Update(ctx context.Context, actorID, videoID string, in dto.UpdateVideoInput) (*model.Video, error) {
	video, _, err := u.ownedVideo(ctx, actorID, videoID, "update")
	if err != nil {
		return nil, err
	}
	update := repository.VideoUpdate{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
	}
	if update.Title == "" && update.Description == "" && in.ThumbnailPath == "" {
		return nil, apperror.Validation("Nothing to update")
	}
	if in.ThumbnailPath != "" {
		asset, err := u.Media.Upload(ctx, in.ThumbnailPath, model.MediaKindImage)
		if err != nil {
			return nil, mediaError(ctx, "thumbnail", err)
		}
		update.Thumbnail = asset.URL
	}

	updated, err := u.Videos.Update(ctx, video.ID, update)
	if err != nil || updated == nil {
		deleteMedia(ctx, u.Media, update.Thumbnail)
		if err != nil {
			return nil, upstream(ctx, "Failed to update video", err)
		}
		return nil, apperror.NotFound("Video not found")
	}
	if update.Thumbnail != "" {
		deleteMedia(ctx, u.Media, video.Thumbnail)
	}
	return updated, nil
}

func (u *VideoUsecase) Delete(ctx context.Context, actorID, videoID string) error {
	video, actor, err := u.ownedVideo(ctx, actorID, videoID, "delete")
	if err != nil {
		return err
	}
	if err := u.Videos.Delete(ctx, video.ID); err != nil {
		return upstream(ctx, "Failed to delete video", err)
	}

	log := logger.FromContext(ctx).WithField("videoId", video.ID.Hex())
	commentIDs, err := u.Comments.DeleteByVideo(ctx, video.ID)
	if err != nil {
		log.WithField("error", err).Error("Failed to delete comments of deleted video")
	}
	if err := u.Likes.DeleteBySubjects(ctx, model.LikeTargetComment, commentIDs); err != nil {
		log.WithField("error", err).Error("Failed to delete comment likes of deleted video")
	}
	if err := u.Likes.DeleteBySubjects(ctx, model.LikeTargetVideo, []bson.ObjectID{video.ID}); err != nil {
		log.WithField("error", err).Error("Failed to delete likes of deleted video")
	}
	if err := u.Playlists.PullVideoEverywhere(ctx, video.ID); err != nil {
		log.WithField("error", err).Error("Failed to remove deleted video from playlists")
	}
	deleteMedia(ctx, u.Media, video.VideoFile, video.Thumbnail)
	u.invalidateStats(ctx, actor)
	publishEvent(ctx, u.Events, model.EventVideoDeleted, video.ID, actor)
	return nil
}

func (u *VideoUsecase) TogglePublish(ctx context.Context, actorID, videoID string) (*model.Video, error) {
	video, _, err := u.ownedVideo(ctx, actorID, videoID, "update")
	if err != nil {
		return nil, err
	}
	updated, err := u.Videos.TogglePublish(ctx, video.ID)
	if err != nil {
		return nil, upstream(ctx, "Failed to toggle publish status", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("Video not found")
	}
	return updated, nil
}

// ownedVideo loads a video the actor is about to change. Non-owners get 403 for published videos
// and 404 for unpublished ones, which they cannot see at all.
func (u *VideoUsecase) ownedVideo(ctx context.Context, actorID, videoID, action string) (*model.Video, bson.ObjectID, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, actor, err
	}
	id, err := parseID(videoID, "video")
	if err != nil {
		return nil, actor, err
	}
	video, err := findVisibleVideo(ctx, u.Videos, id, actor)
	if err != nil {
		return nil, actor, err
	}
	if video.Owner != actor {
		return nil, actor, apperror.Forbidden("You are not allowed to " + action + " this video")
	}
	return video, actor, nil
}

func (u *VideoUsecase) invalidateStats(ctx context.Context, owner bson.ObjectID) {
	invalidateChannelStats(ctx, u.StatsCache, owner)
}

// findVisibleVideo returns the video if it exists and actor may see it, 404 otherwise.
func findVisibleVideo(ctx context.Context, videos repository.IVideo, id, actor bson.ObjectID) (*model.Video, error) {
	video, err := videos.FindByID(ctx, id)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch video", err)
	}
	if video == nil || !video.VisibleTo(actor) {
		return nil, apperror.NotFound("Video not found")
	}
	return video, nil
}
