package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	controller "vidtube/internal/controller/http"
	"vidtube/internal/repo/persistent"
	"vidtube/internal/repo/session"
	"vidtube/internal/usecase"
	"vidtube/internal/worker"
	"vidtube/pkg/config"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/media"
	"vidtube/pkg/middleware"
	"vidtube/pkg/queue"
	"vidtube/pkg/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "vidtube/docs" // Swagger docs
)

// Dependencies are the connections opened by main. Redis and Queue may be
// nil, in which case token revocation and queued media cleanup are disabled.
type Dependencies struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Queue   *queue.Client
	Storage media.Storage
}

// NewRouter wires repositories, usecases and handlers onto a gin engine.
func NewRouter(cfg *config.Config, log *logger.Logger, deps Dependencies) *gin.Engine {
	jwtService := jwt.NewService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	var denylist session.Denylist
	if deps.Redis != nil {
		denylist = session.NewRedisDenylist(deps.Redis)
	}
	var cleanup usecase.CleanupPublisher
	if deps.Queue != nil {
		cleanup = deps.Queue
	}

	// Initialize Repositories
	userRepo := persistent.NewUserRepository(deps.DB)
	videoRepo := persistent.NewVideoRepository(deps.DB)
	commentRepo := persistent.NewCommentRepository(deps.DB)
	likeRepo := persistent.NewLikeRepository(deps.DB)
	subscriptionRepo := persistent.NewSubscriptionRepository(deps.DB)
	playlistRepo := persistent.NewPlaylistRepository(deps.DB)
	tweetRepo := persistent.NewTweetRepository(deps.DB)

	// Initialize UseCases
	userUseCase := usecase.NewUserUseCase(userRepo, jwtService, denylist, deps.Storage, cleanup, log)
	videoUseCase := usecase.NewVideoUseCase(videoRepo, userRepo, deps.Storage, cleanup, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, videoRepo, log)
	likeUseCase := usecase.NewLikeUseCase(likeRepo, log)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, userRepo, log)
	playlistUseCase := usecase.NewPlaylistUseCase(playlistRepo, videoRepo, log)
	tweetUseCase := usecase.NewTweetUseCase(tweetRepo, log)

	// Initialize HTTP handlers
	userHandler := controller.NewUserHandler(userUseCase, cfg.IsProduction(), log)
	videoHandler := controller.NewVideoHandler(videoUseCase, log)
	commentHandler := controller.NewCommentHandler(commentUseCase, log)
	likeHandler := controller.NewLikeHandler(likeUseCase, log)
	subscriptionHandler := controller.NewSubscriptionHandler(subscriptionUseCase, log)
	playlistHandler := controller.NewPlaylistHandler(playlistUseCase, log)
	tweetHandler := controller.NewTweetHandler(tweetUseCase, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(response.StackTraces(!cfg.IsProduction()))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.AuthMiddleware(jwtService, denylist)
	optionalAuth := middleware.OptionalAuth(jwtService, denylist)

	api := r.Group("/api/v1")
	api.GET("/healthcheck", controller.Healthcheck)

	users := api.Group("/user")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/refresh-token", userHandler.RefreshToken)

		users.POST("/logout", auth, userHandler.Logout)
		users.POST("/change-password", auth, userHandler.ChangePassword)
		users.GET("/current-user", auth, userHandler.GetCurrentUser)
		users.GET("/channel/:username", auth, userHandler.GetChannelProfile)
		users.PATCH("/update-account-details", auth, userHandler.UpdateAccount)
		users.PATCH("/update-avatar", auth, userHandler.UpdateAvatar)
		users.PATCH("/update-cover-image", auth, userHandler.UpdateCoverImage)
		users.GET("/watch-history", auth, userHandler.GetWatchHistory)
	}

	videos := api.Group("/video")
	{
		videos.GET("", optionalAuth, videoHandler.ListVideos)
		videos.POST("", auth, videoHandler.PublishVideo)
		videos.GET("/:videoId", optionalAuth, videoHandler.GetVideo)
		videos.PATCH("/:videoId", auth, videoHandler.UpdateVideo)
		videos.DELETE("/:videoId", auth, videoHandler.DeleteVideo)
		videos.PATCH("/:videoId/toggle-publish", auth, videoHandler.TogglePublish)
	}

	comments := api.Group("/comment", auth)
	{
		comments.POST("", commentHandler.AddComment)
		comments.GET("/:videoId", commentHandler.ListComments)
		comments.PUT("/:commentId", commentHandler.UpdateComment)
		comments.DELETE("/:commentId", commentHandler.DeleteComment)
	}

	likes := api.Group("/like", auth)
	{
		likes.POST("/:type/:targetId", likeHandler.ToggleLike)
		likes.GET("/count/:type/:targetId", likeHandler.GetLikeCount)
	}

	subscriptions := api.Group("/subscription", auth)
	{
		subscriptions.POST("/subscribe/:channelId", subscriptionHandler.Subscribe)
		subscriptions.POST("/unsubscribe/:channelId", subscriptionHandler.Unsubscribe)
		subscriptions.GET("/subscribed-channels", subscriptionHandler.ListSubscribedChannels)
		subscriptions.GET("/channel-subscribers/:channelId", subscriptionHandler.ListChannelSubscribers)
		subscriptions.GET("/is-subscribed/:channelId", subscriptionHandler.IsSubscribed)
	}

	playlists := api.Group("/playlist", auth)
	{
		playlists.POST("", playlistHandler.CreatePlaylist)
		playlists.GET("", playlistHandler.ListPlaylists)
		playlists.GET("/:playlistId", playlistHandler.GetPlaylist)
		playlists.PUT("/:playlistId/add-video", playlistHandler.AddVideo)
		playlists.PUT("/:playlistId/remove-video", playlistHandler.RemoveVideo)
		playlists.DELETE("/:playlistId", playlistHandler.DeletePlaylist)
	}

	tweets := api.Group("/tweet", auth)
	{
		tweets.POST("", tweetHandler.CreateTweet)
		tweets.GET("", tweetHandler.ListTweets)
		tweets.GET("/user/:userId", tweetHandler.ListUserTweets)
		tweets.PATCH("/:tweetId", tweetHandler.UpdateTweet)
		tweets.DELETE("/:tweetId", tweetHandler.DeleteTweet)
	}

	r.NoRoute(func(c *gin.Context) {
		response.JSON(c, http.StatusNotFound, nil, "Route not found")
	})

	return r
}

// Run serves the API and the media cleanup worker until SIGINT or SIGTERM.
func Run(cfg *config.Config, log *logger.Logger, deps Dependencies) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if deps.Queue != nil {
		cleanupWorker := worker.NewMediaCleanupWorker(deps.Storage, deps.Queue, log)
		if err := cleanupWorker.Start(ctx); err != nil {
			log.Error("Media cleanup worker not started: %v", err)
		}
	} else {
		log.Warn("RabbitMQ unavailable, failed media deletions will not be retried")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           NewRouter(cfg, log, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("vidtube API starting on port %s (%s)", cfg.ServerPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Failed to start server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down vidtube API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if deps.Queue != nil {
		if err := deps.Queue.Close(); err != nil {
			log.Error("Error closing RabbitMQ: %v", err)
		}
	}
	if deps.Redis != nil {
		if err := deps.Redis.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}
	if sqlDB, err := deps.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("vidtube API exited")
}
