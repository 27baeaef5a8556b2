package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/infrastructure/logger"
)

const (
	ErrorInvalidRequest = "Invalid request"
	userIDKey           = "user_id"
)

func actorID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, dto.NewResponse(status, data, message))
}

// respondError writes the failure envelope. Causes of 5xx errors are logged and never sent to the client.
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).
			WithField("error", appErr.Err).
			WithField("path", c.FullPath()).
			Error(appErr.Message)
	}
	c.JSON(appErr.StatusCode, dto.NewErrorResponse(appErr.StatusCode, appErr.Message, appErr.Errors))
}

func bindError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).WithField("error", err).Debug(ErrorInvalidRequest)
	respondError(c, apperror.Validation(ErrorInvalidRequest).WithDetail(err.Error()))
}
