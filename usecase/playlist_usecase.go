package usecase

import (
	"context"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type IPlaylistUsecase interface {
	Create(ctx context.Context, actorID string, req dto.PlaylistRequest) (*model.Playlist, error)
	UserPlaylists(ctx context.Context, userID string) ([]model.Playlist, error)
	Get(ctx context.Context, actorID, playlistID string) (*dto.PlaylistDetail, error)
	Update(ctx context.Context, actorID, playlistID string, req dto.UpdatePlaylistRequest) (*model.Playlist, error)
	Delete(ctx context.Context, actorID, playlistID string) error
	AddVideo(ctx context.Context, actorID, videoID, playlistID string) (*model.Playlist, error)
	RemoveVideo(ctx context.Context, actorID, videoID, playlistID string) (*model.Playlist, error)
}

type PlaylistUsecase struct {
	playlists repository.IPlaylist
	videos    repository.IVideo
	users     repository.IUser
}

func NewPlaylistUsecase(playlists repository.IPlaylist, videos repository.IVideo, users repository.IUser) IPlaylistUsecase {
	return &PlaylistUsecase{playlists: playlists, videos: videos, users: users}
}

func (u *PlaylistUsecase) Create(ctx context.Context, actorID string, req dto.PlaylistRequest) (*model.Playlist, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("Playlist name is required")
	}
	playlist := &model.Playlist{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Owner:       actor,
		Videos:      []bson.ObjectID{},
	}
	if err := u.playlists.Create(ctx, playlist); err != nil {
		return nil, upstream(ctx, "Failed to create playlist", err)
	}
	return playlist, nil
}

func (u *PlaylistUsecase) UserPlaylists(ctx context.Context, userID string) ([]model.Playlist, error) {
	owner, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, u.users, owner); err != nil {
		return nil, err
	}
	playlists, err := u.playlists.ListByOwner(ctx, owner)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch playlists", err)
	}
	if playlists == nil {
		playlists = []model.Playlist{}
	}
	return playlists, nil
}

// Get returns the playlist with summaries of the videos the actor may see.
func (u *PlaylistUsecase) Get(ctx context.Context, actorID, playlistID string) (*dto.PlaylistDetail, error) {
	id, err := parseID(playlistID, "playlist")
	if err != nil {
		return nil, err
	}
	playlist, err := u.findPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}
	videos, err := u.videos.Summaries(ctx, playlist.Videos, optionalActor(actorID))
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch playlist videos", err)
	}
	if videos == nil {
		videos = []dto.PlaylistVideo{}
	}
	detail := &dto.PlaylistDetail{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		Owner:       playlist.Owner,
		Videos:      videos,
		TotalVideos: len(videos),
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}
	for _, video := range videos {
		detail.TotalViews += video.Views
	}
	return detail, nil
}

func (u *PlaylistUsecase) Update(ctx context.Context, actorID, playlistID string, req dto.UpdatePlaylistRequest) (*model.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" && description == "" {
		return nil, apperror.Validation("Name or description is required")
	}
	playlist, err := u.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = playlist.Name
	}
	if description == "" {
		description = playlist.Description
	}
	updated, err := u.playlists.Update(ctx, playlist.ID, name, description)
	if err != nil {
		return nil, upstream(ctx, "Failed to update playlist", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("Playlist not found")
	}
	return updated, nil
}

func (u *PlaylistUsecase) Delete(ctx context.Context, actorID, playlistID string) error {
	playlist, err := u.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return err
	}
	if err := u.playlists.Delete(ctx, playlist.ID); err != nil {
		return upstream(ctx, "Failed to delete playlist", err)
	}
	return nil
}

func (u *PlaylistUsecase) AddVideo(ctx context.Context, actorID, videoID, playlistID string) (*model.Playlist, error) {
	video, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	playlist, err := u.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}
	if _, err := findVisibleVideo(ctx, u.videos, video, playlist.Owner); err != nil {
		return nil, err
	}
	updated, err := u.playlists.AddVideo(ctx, playlist.ID, video)
	if err != nil {
		return nil, upstream(ctx, "Failed to add video to playlist", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("Playlist not found")
	}
	return updated, nil
}

func (u *PlaylistUsecase) RemoveVideo(ctx context.Context, actorID, videoID, playlistID string) (*model.Playlist, error) {
	video, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	playlist, err := u.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(playlist.Videos, video) {
		return nil, apperror.NotFound("Video not found in playlist")
	}
	updated, err := u.playlists.RemoveVideo(ctx, playlist.ID, video)
	if err != nil {
		return nil, upstream(ctx, "Failed to remove video from playlist", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("Playlist not found")
	}
	return updated, nil
}

func (u *PlaylistUsecase) findPlaylist(ctx context.Context, id bson.ObjectID) (*model.Playlist, error) {
	playlist, err := u.playlists.FindByID(ctx, id)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch playlist", err)
	}
	if playlist == nil {
		return nil, apperror.NotFound("Playlist not found")
	}
	return playlist, nil
}

func (u *PlaylistUsecase) ownedPlaylist(ctx context.Context, actorID, playlistID string) (*model.Playlist, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(playlistID, "playlist")
	if err != nil {
		return nil, err
	}
	playlist, err := u.findPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.Owner != actor {
		return nil, apperror.Forbidden("You are not the owner of this playlist")
	}
	return playlist, nil
}
