package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"

	"vidtube/domain/repository"
	"vidtube/infrastructure/cache"
	"vidtube/infrastructure/configuration"
	"vidtube/infrastructure/events"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/persistence"
	"vidtube/infrastructure/realtime"
	"vidtube/infrastructure/storage"
	"vidtube/infrastructure/utils"
	httpHandler "vidtube/interfaces/http"
	"vidtube/server"
	"vidtube/usecase"
)

const shutdownTimeout = 5 * time.Second

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load env from files (non-destructive; OS env still has precedence)
	if loaded := configuration.LoadEnvFromFile("config.env", ".env"); len(loaded) > 0 {
		logger.GetLogger().WithField("files", loaded).Info("Loaded environment files")
		configuration.Reload()
	}
	cfg := configuration.C

	mongoClient, err := persistence.NewMongoDb(ctx, cfg.Database.Mongo.MongoURI(), cfg.Database.Mongo.ConnectTimeout)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Cannot connect to MongoDB")
	}
	db := mongoClient.Database(cfg.Database.Mongo.Name)
	if err := persistence.EnsureIndexes(db); err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Failed ensuring MongoDB indexes")
	}
	logger.GetLogger().WithField("database", cfg.Database.Mongo.Name).Info("MongoDB connected successfully")

	redisClient := initiateRedis(ctx, cfg.RedisClient)

	minioClient, err := storage.NewMinioClient(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Cannot create media storage client")
	}
	if err := storage.EnsureBucket(ctx, minioClient, cfg.Storage.Bucket); err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Failed ensuring media bucket")
	}
	mediaStorage := storage.NewMediaStorage(minioClient, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL)

	publisher, err := events.NewPublisher(ctx, cfg.Events)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("provider", cfg.Events.Provider).
			Warn("Event broker not available - domain events will be dropped")
		publisher = events.NoopPublisher{}
	}

	activityHub := realtime.NewActivityHub()
	router := initiateRouter(cfg, db, persistence.NewHealthRepository(mongoClient), redisClient, mediaStorage, publisher, activityHub)

	g, gctx := errgroup.WithContext(ctx)
	httpServer := newHTTPServer(fmt.Sprintf(":%d", cfg.App.Port), router, activityHub)

	logger.GetLogger().WithFields(map[string]interface{}{"port": cfg.App.Port, "tls": cfg.App.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		return listen(httpServer, cfg.App)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.GetLogger().Info("Application shutdown requested")
		return shutdownServer(httpServer, shutdownTimeout)
	})

	err = g.Wait()
	closeResources(mongoClient, redisClient, publisher)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// newHTTPServer closes the activity streams when shutdown starts, so open SSE clients do not hold it up.
func newHTTPServer(addr string, handler http.Handler, hub *realtime.Hub) *http.Server {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	httpServer.RegisterOnShutdown(hub.Close)
	return httpServer
}

// shutdownServer waits up to timeout for in-flight requests. Requests still running after that are
// abandoned and logged, the process still exits cleanly.
func shutdownServer(httpServer *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := httpServer.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		logger.GetLogger().WithField("timeout", timeout.String()).Warn("Shutdown timed out with requests still in flight")
		return nil
	}
	return err
}

func listen(httpServer *http.Server, app configuration.App) error {
	var err error
	if app.TLSEnabled && app.TLSCertFile != "" && app.TLSKeyFile != "" {
		logger.GetLogger().WithFields(map[string]interface{}{"cert": app.TLSCertFile, "key": app.TLSKeyFile}).Info("Serving HTTPS")
		err = httpServer.ListenAndServeTLS(app.TLSCertFile, app.TLSKeyFile)
	} else {
		if app.TLSEnabled {
			logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
		}
		err = httpServer.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// initiateRedis returns nil when Redis is not configured or unreachable; channel stats are then computed every time.
func initiateRedis(ctx context.Context, conf configuration.RedisClient) *redis.Client {
	if conf.Host == "" {
		logger.GetLogger().Info("Redis not configured - channel stats cache disabled")
		return nil
	}
	client, err := cache.NewCache(ctx, fmt.Sprintf("%s:%s", conf.Host, conf.Port), conf.Username, conf.Password)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without channel stats cache")
		return nil
	}
	logger.GetLogger().Info("Redis client initialized successfully.")
	return client
}

func initiateRouter(
	cfg configuration.Config,
	db *mongo.Database,
	health repository.IHealth,
	redisClient *redis.Client,
	media repository.IMediaStorage,
	publisher repository.IEventPublisher,
	hub *realtime.Hub,
) http.Handler {
	pagination := usecase.Pagination{DefaultLimit: cfg.Pagination.DefaultLimit, MaxLimit: cfg.Pagination.MaxLimit}

	userRepository := persistence.NewUserRepository(db)
	videoRepository := persistence.NewVideoRepository(db)
	commentRepository := persistence.NewCommentRepository(db)
	likeRepository := persistence.NewLikeRepository(db)
	tweetRepository := persistence.NewTweetRepository(db)
	subscriptionRepository := persistence.NewSubscriptionRepository(db)
	playlistRepository := persistence.NewPlaylistRepository(db)
	statsCache := cache.NewChannelStatsCache(redisClient)

	tokens := utils.NewTokenIssuer(cfg.App.AccessTokenSecret, cfg.App.AccessTokenTTL, cfg.App.RefreshTokenSecret, cfg.App.RefreshTokenTTL)

	userUsecase := usecase.NewUserUsecase(userRepository, media, publisher, tokens)
	videoUsecase := usecase.NewVideoUsecase(usecase.VideoDeps{
		Videos:       videoRepository,
		Users:        userRepository,
		Comments:     commentRepository,
		Likes:        likeRepository,
		Playlists:    playlistRepository,
		Media:        media,
		Events:       publisher,
		StatsCache:   statsCache,
		Pagination:   pagination,
		HistoryLimit: cfg.App.WatchHistoryLimit,
	})
	commentUsecase := usecase.NewCommentUsecase(commentRepository, videoRepository, likeRepository, pagination).
		WithNotifier(hub).
		WithStatsCache(statsCache)
	likeUsecase := usecase.NewLikeUsecase(likeRepository, videoRepository, commentRepository, tweetRepository, pagination).
		WithNotifier(hub).
		WithStatsCache(statsCache)
	tweetUsecase := usecase.NewTweetUsecase(tweetRepository, userRepository, likeRepository, pagination).WithStatsCache(statsCache)
	subscriptionUsecase := usecase.NewSubscriptionUsecase(subscriptionRepository, userRepository, statsCache, pagination).WithNotifier(hub)
	playlistUsecase := usecase.NewPlaylistUsecase(playlistRepository, videoRepository, userRepository)
	dashboardUsecase := usecase.NewDashboardUsecase(videoRepository, likeRepository, subscriptionRepository, statsCache, cfg.Cache.ChannelStatsTTL)
	healthcheckUsecase := usecase.NewHealthcheckUsecase(health)

	upload := httpHandler.UploadConfig{Dir: cfg.Storage.TempDir, MaxBytes: cfg.Storage.MaxUploadMB << 20}
	cookies := httpHandler.CookieConfig{
		Secure:     cfg.App.SecureCookies,
		AccessTTL:  cfg.App.AccessTokenTTL,
		RefreshTTL: cfg.App.RefreshTokenTTL,
	}

	handlers := server.Handlers{
		User:           httpHandler.NewUserHandler(userUsecase, cookies, upload),
		Video:          httpHandler.NewVideoHandler(videoUsecase, upload),
		Comment:        httpHandler.NewCommentHandler(commentUsecase),
		Like:           httpHandler.NewLikeHandler(likeUsecase),
		Tweet:          httpHandler.NewTweetHandler(tweetUsecase),
		Subscription:   httpHandler.NewSubscriptionHandler(subscriptionUsecase),
		Playlist:       httpHandler.NewPlaylistHandler(playlistUsecase),
		Dashboard:      httpHandler.NewDashboardHandler(dashboardUsecase),
		Healthcheck:    httpHandler.NewHealthcheckHandler(healthcheckUsecase),
		ActivityStream: hub.Serve,
	}
	return server.InitiateRouter(handlers, userUsecase, server.Options{
		CorsOrigins:    cfg.App.CorsOrigins,
		RequestTimeout: cfg.App.RequestTimeout,
	})
}

func closeResources(mongoClient *mongo.Client, redisClient *redis.Client, publisher repository.IEventPublisher) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to disconnect MongoDB")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.GetLogger().WithField("error", err).Error("Failed to close Redis client")
		}
	}
	if err := publisher.Close(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to close event publisher")
	}
}
