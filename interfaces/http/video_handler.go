package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/usecase"
)

type IVideoHandler interface {
	List(c *gin.Context)
	Publish(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	TogglePublish(c *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
	upload       UploadConfig
}

func NewVideoHandler(videoUsecase usecase.IVideoUsecase, upload UploadConfig) IVideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase, upload: upload}
}

func (h *VideoHandler) List(c *gin.Context) {
	var q dto.VideoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.videoUsecase.List(c.Request.Context(), actorID(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	setPageLinks(c, q, res)
	respond(c, http.StatusOK, res, "Videos fetched successfully")
}

func (h *VideoHandler) Publish(c *gin.Context) {
	files := newUploads(c, h.upload)
	defer files.cleanup()

	var req dto.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	videoPath, err := files.save("videoFile", req.VideoFile)
	if err != nil {
		respondError(c, err)
		return
	}
	thumbnailPath, err := files.save("thumbnail", req.Thumbnail)
	if err != nil {
		respondError(c, err)
		return
	}
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	video, err := h.videoUsecase.Publish(c.Request.Context(), actorID(c), dto.PublishVideoInput{
		Title:         req.Title,
		Description:   req.Description,
		IsPublished:   published,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, video, "Video published successfully")
}

func (h *VideoHandler) Get(c *gin.Context) {
	video, err := h.videoUsecase.Get(c.Request.Context(), actorID(c), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Video fetched successfully")
}

func (h *VideoHandler) Update(c *gin.Context) {
	files := newUploads(c, h.upload)
	defer files.cleanup()

	var req dto.UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	thumbnailPath, err := files.save("thumbnail", req.Thumbnail)
	if err != nil {
		respondError(c, err)
		return
	}
	video, err := h.videoUsecase.Update(c.Request.Context(), actorID(c), c.Param("videoId"), dto.UpdateVideoInput{
		Title:         req.Title,
		Description:   req.Description,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Video updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	if err := h.videoUsecase.Delete(c.Request.Context(), actorID(c), c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	video, err := h.videoUsecase.TogglePublish(c.Request.Context(), actorID(c), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Publish status toggled successfully")
}
