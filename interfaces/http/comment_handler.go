package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/usecase"
)

type ICommentHandler interface {
	List(c *gin.Context)
	Add(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type CommentHandler struct {
	commentUsecase usecase.ICommentUsecase
}

func NewCommentHandler(commentUsecase usecase.ICommentUsecase) ICommentHandler {
	return &CommentHandler{commentUsecase: commentUsecase}
}

func (h *CommentHandler) List(c *gin.Context) {
	q, err := bindPage(c)
	if err != nil {
		bindError(c, err)
		return
	}
	res, err := h.commentUsecase.List(c.Request.Context(), actorID(c), c.Param("videoId"), q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	setPageLinks(c, q, res)
	respond(c, http.StatusOK, res, "Comments fetched successfully")
}

func (h *CommentHandler) Add(c *gin.Context) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	comment, err := h.commentUsecase.Add(c.Request.Context(), actorID(c), c.Param("videoId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	comment, err := h.commentUsecase.Update(c.Request.Context(), actorID(c), c.Param("commentId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, comment, "Comment updated successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.commentUsecase.Delete(c.Request.Context(), actorID(c), c.Param("commentId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
}
