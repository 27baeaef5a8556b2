package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	httpHandler "vidtube/interfaces/http"
	"vidtube/interfaces/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	User         httpHandler.IUserHandler
	Video        httpHandler.IVideoHandler
	Comment      httpHandler.ICommentHandler
	Like         httpHandler.ILikeHandler
	Tweet        httpHandler.ITweetHandler
	Subscription httpHandler.ISubscriptionHandler
	Playlist     httpHandler.IPlaylistHandler
	Dashboard    httpHandler.IDashboardHandler
	Healthcheck  httpHandler.IHealthcheckHandler
	// ActivityStream serves the realtime SSE stream. It is mounted without the request timeout.
	ActivityStream gin.HandlerFunc
}

type Options struct {
	CorsOrigins    []string
	RequestTimeout time.Duration
}

func InitiateRouter(h Handlers, authenticator middleware.Authenticator, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Link", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Route not found", nil))
	})

	auth := middleware.Auth(authenticator)
	optionalAuth := middleware.OptionalAuth(authenticator)

	root := router.Group("/api/v1")
	root.GET("/activity/stream", auth, h.ActivityStream)

	api := root.Group("")
	api.Use(middleware.Timeout(opts.RequestTimeout))

	api.GET("/healthcheck", h.Healthcheck.Check)

	users := api.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.POST("/refresh-token", h.User.RefreshToken)
		users.GET("/c/:username", optionalAuth, h.User.ChannelProfile)

		users.POST("/logout", auth, h.User.Logout)
		users.POST("/change-password", auth, h.User.ChangePassword)
		users.GET("/current-user", auth, h.User.CurrentUser)
		users.PATCH("/update-account", auth, h.User.UpdateAccount)
		users.PATCH("/avatar", auth, h.User.UpdateAvatar)
		users.PATCH("/cover-image", auth, h.User.UpdateCoverImage)
		users.GET("/history", auth, h.User.WatchHistory)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", optionalAuth, h.Video.List)
		videos.GET("/:videoId", optionalAuth, h.Video.Get)
		videos.POST("", auth, h.Video.Publish)
		videos.PATCH("/:videoId", auth, h.Video.Update)
		videos.DELETE("/:videoId", auth, h.Video.Delete)
		videos.PATCH("/toggle/publish/:videoId", auth, h.Video.TogglePublish)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/:videoId", optionalAuth, h.Comment.List)
		comments.POST("/:videoId", auth, h.Comment.Add)
		comments.PATCH("/c/:commentId", auth, h.Comment.Update)
		comments.DELETE("/c/:commentId", auth, h.Comment.Delete)
	}

	likes := api.Group("/likes", auth)
	{
		likes.POST("/toggle/v/:videoId", h.Like.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", h.Like.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", h.Like.ToggleTweetLike)
		likes.GET("/videos", h.Like.LikedVideos)
	}

	tweets := api.Group("/tweets")
	{
		tweets.POST("", auth, h.Tweet.Create)
		tweets.GET("/user/:userId", optionalAuth, h.Tweet.UserTweets)
		tweets.PATCH("/:tweetId", auth, h.Tweet.Update)
		tweets.DELETE("/:tweetId", auth, h.Tweet.Delete)
	}

	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.POST("/c/:channelId", auth, h.Subscription.Toggle)
		subscriptions.GET("/c/:channelId", optionalAuth, h.Subscription.Subscribers)
		subscriptions.GET("/u/:subscriberId", optionalAuth, h.Subscription.SubscribedChannels)
	}

	playlists := api.Group("/playlist")
	{
		playlists.POST("", auth, h.Playlist.Create)
		playlists.GET("/user/:userId", h.Playlist.UserPlaylists)
		playlists.GET("/:playlistId", optionalAuth, h.Playlist.Get)
		playlists.PATCH("/:playlistId", auth, h.Playlist.Update)
		playlists.DELETE("/:playlistId", auth, h.Playlist.Delete)
		playlists.PATCH("/add/:videoId/:playlistId", auth, h.Playlist.AddVideo)
		playlists.PATCH("/remove/:videoId/:playlistId", auth, h.Playlist.RemoveVideo)
	}

	dashboard := api.Group("/dashboard", auth)
	{
		dashboard.GET("/stats", h.Dashboard.Stats)
		dashboard.GET("/videos", h.Dashboard.Videos)
	}

	return router
}
