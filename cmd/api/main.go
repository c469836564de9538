package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minitwitter/minitwitter/internal/config"
	"github.com/minitwitter/minitwitter/internal/handlers"
	"github.com/minitwitter/minitwitter/internal/middleware"
	"github.com/minitwitter/minitwitter/internal/repository"
	"github.com/minitwitter/minitwitter/internal/services"
	"github.com/minitwitter/minitwitter/pkg/cache"
	"github.com/minitwitter/minitwitter/pkg/logger"
	"github.com/minitwitter/minitwitter/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting mini-twitter API server...")

	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	producer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.Events)
	defer producer.Close()

	userRepo := repository.NewUserRepository(db.DB)
	tweetRepo := repository.NewTweetRepository(db.DB)
	likeRepo := repository.NewLikeRepository(db.DB)
	followRepo := repository.NewFollowRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)

	moderator := services.NewModerator(cfg.Moderation.BannedWords)

	userService := services.NewUserService(userRepo, producer, logger)
	tweetService := services.NewTweetService(tweetRepo, likeRepo, moderator, producer, logger)
	graphService := services.NewGraphService(userRepo, followRepo, notificationRepo, producer, logger)
	feedService := services.NewFeedService(tweetRepo, notificationRepo, logger)

	tokens := cache.NewTokenStore(redisClient, cfg.JWT.ExpireTime)
	jwtConfig := &middleware.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpireTime: cfg.JWT.ExpireTime,
		Tokens:     tokens,
	}

	userHandler := handlers.NewUserHandler(userService, graphService, feedService, jwtConfig)
	feedHandler := handlers.NewFeedHandler(tweetService, feedService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api := router.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("/search", userHandler.SearchUsers)
			users.GET("/:id", userHandler.GetProfile)
			users.GET("/:id/followers/count", userHandler.FollowerCount)
		}

		// The global feed is public, like the original app's.
		api.GET("/feed", feedHandler.GetFeed)

		protected := api.Group("")
		protected.Use(middleware.NewJWTAuth(jwtConfig))
		{
			protected.POST("/tweets", feedHandler.CreateTweet)
			protected.DELETE("/tweets/:id", feedHandler.DeleteTweet)
			protected.POST("/tweets/:id/like", feedHandler.LikeTweet)
			protected.POST("/users/follow", userHandler.Follow)
			protected.DELETE("/users/follow/:username", userHandler.Unfollow)
			protected.POST("/users/logout", userHandler.Logout)
			protected.GET("/notifications", userHandler.Notifications)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func init() {
	if err := os.MkdirAll("configs", 0755); err != nil {
		log.Printf("Failed to create configs directory: %v", err)
	}

	configPath := "configs/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			log.Printf("Failed to create default config: %v", err)
		}
	}
}

func createDefaultConfig(path string) error {
	defaultConfig := `server:
  port: ":8080"
  mode: "debug"
  read_timeout: 30s
  write_timeout: 30s

database:
  host: "localhost"
  port: 5432
  user: "minitwitter"
  password: "minitwitter"
  dbname: "minitwitter"
  sslmode: "disable"
  max_open_conns: 1   # single serialization point for all store access
  max_idle_conns: 1

redis:
  host: "localhost"
  port: 6379
  password: ""
  db: 0
  pool_size: 10
  min_idle_conns: 2

kafka:
  brokers:
    - "localhost:9092"
  topics:
    events: "minitwitter-events"

jwt:
  secret: "your-secret-key-change-in-production"
  expire_time: 24h

moderation:
  banned_words:
    - "hate"
    - "kill"
    - "stupid"
    - "idiot"
    - "dumb"
    - "moron"
    - "loser"
    - "bitch"
    - "slut"
    - "whore"
    - "retard"
    - "faggot"
    - "kill yourself"
    - "die"
    - "trash"
    - "jerk"
    - "ugly"
    - "asshole"
    - "bastard"
    - "piss"
    - "dick"`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
