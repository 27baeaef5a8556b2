package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/usecase"
)

type ITweetHandler interface {
	Create(c *gin.Context)
	UserTweets(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type TweetHandler struct {
	tweetUsecase usecase.ITweetUsecase
}

func NewTweetHandler(tweetUsecase usecase.ITweetUsecase) ITweetHandler {
	return &TweetHandler{tweetUsecase: tweetUsecase}
}

func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tweet, err := h.tweetUsecase.Create(c.Request.Context(), actorID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *TweetHandler) UserTweets(c *gin.Context) {
	q, err := bindPage(c)
	if err != nil {
		bindError(c, err)
		return
	}
	res, err := h.tweetUsecase.UserTweets(c.Request.Context(), actorID(c), c.Param("userId"), q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	setPageLinks(c, q, res)
	respond(c, http.StatusOK, res, "Tweets fetched successfully")
}

func (h *TweetHandler) Update(c *gin.Context) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tweet, err := h.tweetUsecase.Update(c.Request.Context(), actorID(c), c.Param("tweetId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, tweet, "Tweet updated successfully")
}

func (h *TweetHandler) Delete(c *gin.Context) {
	if err := h.tweetUsecase.Delete(c.Request.Context(), actorID(c), c.Param("tweetId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Tweet deleted successfully")
}
