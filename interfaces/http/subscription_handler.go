package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/usecase"
)

type ISubscriptionHandler interface {
	Toggle(c *gin.Context)
	Subscribers(c *gin.Context)
	SubscribedChannels(c *gin.Context)
}

type SubscriptionHandler struct {
	subscriptionUsecase usecase.ISubscriptionUsecase
}

func NewSubscriptionHandler(subscriptionUsecase usecase.ISubscriptionUsecase) ISubscriptionHandler {
	return &SubscriptionHandler{subscriptionUsecase: subscriptionUsecase}
}

func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	res, err := h.subscriptionUsecase.Toggle(c.Request.Context(), actorID(c), c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Unsubscribed"
	if res.Subscribed {
		message = "Subscribed"
	}
	respond(c, http.StatusOK, res, message)
}

func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	q, err := bindPage(c)
	if err != nil {
		bindError(c, err)
		return
	}
	res, err := h.subscriptionUsecase.Subscribers(c.Request.Context(), c.Param("channelId"), q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	setPageLinks(c, q, res)
	respond(c, http.StatusOK, res, "Subscribers fetched successfully")
}

func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	q, err := bindPage(c)
	if err != nil {
		bindError(c, err)
		return
	}
	res, err := h.subscriptionUsecase.SubscribedChannels(c.Request.Context(), c.Param("subscriberId"), q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	setPageLinks(c, q, res)
	respond(c, http.StatusOK, res, "Subscribed channels fetched successfully")
}
