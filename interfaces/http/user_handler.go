package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/usecase"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

type IUserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	RefreshToken(c *gin.Context)
	ChangePassword(c *gin.Context)
	CurrentUser(c *gin.Context)
	UpdateAccount(c *gin.Context)
	UpdateAvatar(c *gin.Context)
	UpdateCoverImage(c *gin.Context)
	ChannelProfile(c *gin.Context)
	WatchHistory(c *gin.Context)
}

// CookieConfig controls the session cookies set on login and refresh.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type UserHandler struct {
	userUsecase usecase.IUserUsecase
	cookies     CookieConfig
	upload      UploadConfig
}

func NewUserHandler(userUsecase usecase.IUserUsecase, cookies CookieConfig, upload UploadConfig) IUserHandler {
	return &UserHandler{userUsecase: userUsecase, cookies: cookies, upload: upload}
}

func (h *UserHandler) Register(c *gin.Context) {
	files := newUploads(c, h.upload)
	defer files.cleanup()

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	avatar, err := files.save("avatar", req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	cover, err := files.save("coverImage", req.CoverImage)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userUsecase.Register(c.Request.Context(), dto.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		FullName:       req.FullName,
		Password:       req.Password,
		AvatarPath:     avatar,
		CoverImagePath: cover,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, user, "User registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.userUsecase.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setSessionCookies(c, res.AccessToken, res.RefreshToken)
	respond(c, http.StatusOK, res, "User logged in successfully")
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userUsecase.Logout(c.Request.Context(), actorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
	respond(c, http.StatusOK, gin.H{}, "User logged out")
}

// RefreshToken reads the refresh token from its cookie, falling back to the JSON body.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(refreshTokenCookie)
	if token == "" {
		var req dto.RefreshTokenRequest
		_ = c.ShouldBindJSON(&req)
		token = strings.TrimSpace(req.RefreshToken)
	}
	pair, err := h.userUsecase.RefreshToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setSessionCookies(c, pair.AccessToken, pair.RefreshToken)
	respond(c, http.StatusOK, pair, "Access token refreshed")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.userUsecase.ChangePassword(c.Request.Context(), actorID(c), req); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	user, err := h.userUsecase.CurrentUser(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Current user fetched successfully")
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.userUsecase.UpdateAccount(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.replaceImage(c, "avatar", h.userUsecase.UpdateAvatar, "Avatar updated successfully")
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.replaceImage(c, "coverImage", h.userUsecase.UpdateCoverImage, "Cover image updated successfully")
}

func (h *UserHandler) replaceImage(
	c *gin.Context,
	field string,
	update func(ctx context.Context, actorID, localPath string) (*model.User, error),
	message string,
) {
	files := newUploads(c, h.upload)
	defer files.cleanup()

	file, err := c.FormFile(field)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		bindError(c, err)
		return
	}
	path, err := files.save(field, file)
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := update(c.Request.Context(), actorID(c), path)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, message)
}

func (h *UserHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.userUsecase.ChannelProfile(c.Request.Context(), actorID(c), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, profile, "User channel fetched successfully")
}

func (h *UserHandler) WatchHistory(c *gin.Context) {
	items, err := h.userUsecase.WatchHistory(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []dto.VideoFeedItem{}
	}
	respond(c, http.StatusOK, items, "Watch history fetched successfully")
}

func (h *UserHandler) setSessionCookies(c *gin.Context, access, refresh string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, access, int(h.cookies.AccessTTL.Seconds()), "/", "", h.cookies.Secure, true)
	c.SetCookie(refreshTokenCookie, refresh, int(h.cookies.RefreshTTL.Seconds()), "/", "", h.cookies.Secure, true)
}
