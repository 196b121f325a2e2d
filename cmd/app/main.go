package main

import (
	"context"
	"time"

	"vidtube/internal/app"
	"vidtube/pkg/cache"
	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/logger"
	"vidtube/pkg/media"
	"vidtube/pkg/minio"
	"vidtube/pkg/queue"
	"vidtube/pkg/s3"

	"github.com/gin-gonic/gin"
)

// @title           vidtube API
// @version         1.0
// @description     Video sharing backend: accounts, videos, comments, likes, subscriptions, playlists and tweets.

// @host      localhost:8000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token. The accessToken cookie is accepted as well.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.NewWithLevel(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	storage, err := newStorage(cfg)
	if err != nil {
		log.Error("Failed to create %s media client: %v", cfg.MediaBackend, err)
		panic(err)
	}

	deps := app.Dependencies{DB: db, Storage: storage}

	if redisClient, err := cache.NewRedisClient(cfg); err != nil {
		log.Warn("Redis unavailable, access tokens stay valid until expiry after logout: %v", err)
	} else {
		deps.Redis = redisClient
	}

	if queueClient, err := queue.NewRabbitMQClient(cfg, log); err != nil {
		log.Warn("RabbitMQ unavailable: %v", err)
	} else {
		deps.Queue = queueClient
	}

	app.Run(cfg, log, deps)
}

func newStorage(cfg *config.Config) (media.Storage, error) {
	if cfg.MediaBackend == config.MediaBackendMinIO {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := minio.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	client, err := s3.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}
