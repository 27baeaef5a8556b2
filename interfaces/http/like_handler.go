package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/usecase"
)

type ILikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
	LikedVideos(c *gin.Context)
}

type LikeHandler struct {
	likeUsecase usecase.ILikeUsecase
}

func NewLikeHandler(likeUsecase usecase.ILikeUsecase) ILikeHandler {
	return &LikeHandler{likeUsecase: likeUsecase}
}

func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "videoId", "Video", h.likeUsecase.ToggleVideoLike)
}

func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "commentId", "Comment", h.likeUsecase.ToggleCommentLike)
}

func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "tweetId", "Tweet", h.likeUsecase.ToggleTweetLike)
}

func (h *LikeHandler) toggle(
	c *gin.Context,
	param, subject string,
	toggle func(ctx context.Context, actorID, subjectID string) (*dto.ToggleLikeResult, error),
) {
	res, err := toggle(c.Request.Context(), actorID(c), c.Param(param))
	if err != nil {
		respondError(c, err)
		return
	}
	message := subject + " unliked"
	if res.Liked {
		message = subject + " liked"
	}
	respond(c, http.StatusOK, res, message)
}

func (h *LikeHandler) LikedVideos(c *gin.Context) {
	q, err := bindPage(c)
	if err != nil {
		bindError(c, err)
		return
	}
	res, err := h.likeUsecase.LikedVideos(c.Request.Context(), actorID(c), q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	setPageLinks(c, q, res)
	respond(c, http.StatusOK, res, "Liked videos fetched successfully")
}
