package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/infrastructure/logger"
)

const (
	UserIDKey = "user_id"
	UserKey   = "user"

	accessTokenCookie = "accessToken"
)

// Authenticator resolves an access token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

// Auth rejects requests without a valid access token, taken from the accessToken cookie
// or an "Authorization: Bearer" header.
func Auth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticator.Authenticate(c.Request.Context(), accessToken(c))
		if err != nil {
			appErr := apperror.From(err)
			if appErr.StatusCode >= http.StatusInternalServerError {
				logger.FromContext(c.Request.Context()).WithField("error", appErr.Err).Error("Authentication failed")
			}
			c.AbortWithStatusJSON(appErr.StatusCode, dto.NewErrorResponse(appErr.StatusCode, appErr.Message, appErr.Errors))
			return
		}
		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets anonymous requests through.
func OptionalAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := accessToken(c); token != "" {
			if user, err := authenticator.Authenticate(c.Request.Context(), token); err == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

func setUser(c *gin.Context, user *model.User) {
	c.Set(UserIDKey, user.ID.Hex())
	c.Set(UserKey, user)
}

func accessToken(c *gin.Context) string {
	if token, err := c.Cookie(accessTokenCookie); err == nil && token != "" {
		return token
	}
	authorization := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authorization, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
