package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/usecase"
)

type IPlaylistHandler interface {
	Create(c *gin.Context)
	UserPlaylists(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	AddVideo(c *gin.Context)
	RemoveVideo(c *gin.Context)
}

type PlaylistHandler struct {
	playlistUsecase usecase.IPlaylistUsecase
}

func NewPlaylistHandler(playlistUsecase usecase.IPlaylistUsecase) IPlaylistHandler {
	return &PlaylistHandler{playlistUsecase: playlistUsecase}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	playlist, err := h.playlistUsecase.Create(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, playlist, "Playlist created successfully")
}

func (h *PlaylistHandler) UserPlaylists(c *gin.Context) {
	playlists, err := h.playlistUsecase.UserPlaylists(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlists, "User playlists fetched successfully")
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	playlist, err := h.playlistUsecase.Get(c.Request.Context(), actorID(c), c.Param("playlistId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "Playlist fetched successfully")
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	var req dto.UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	playlist, err := h.playlistUsecase.Update(c.Request.Context(), actorID(c), c.Param("playlistId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "Playlist updated successfully")
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	if err := h.playlistUsecase.Delete(c.Request.Context(), actorID(c), c.Param("playlistId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlist, err := h.playlistUsecase.AddVideo(c.Request.Context(), actorID(c), c.Param("videoId"), c.Param("playlistId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "Video added to playlist successfully")
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlist, err := h.playlistUsecase.RemoveVideo(c.Request.Context(), actorID(c), c.Param("videoId"), c.Param("playlistId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "Video removed from playlist successfully")
}
