package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/usecase"
)

type IHealthcheckHandler interface {
	Check(c *gin.Context)
}

type HealthcheckHandler struct {
	healthcheckUsecase usecase.IHealthcheckUsecase
}

func NewHealthcheckHandler(healthcheckUsecase usecase.IHealthcheckUsecase) IHealthcheckHandler {
	return &HealthcheckHandler{healthcheckUsecase: healthcheckUsecase}
}

func (h *HealthcheckHandler) Check(c *gin.Context) {
	respond(c, http.StatusOK, h.healthcheckUsecase.Check(c.Request.Context()), "OK")
}
