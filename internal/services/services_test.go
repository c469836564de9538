package services

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/minitwitter/minitwitter/internal/config"
	"github.com/minitwitter/minitwitter/internal/models"
	"github.com/minitwitter/minitwitter/internal/repository"
	"github.com/minitwitter/minitwitter/pkg/logger"
	"github.com/minitwitter/minitwitter/pkg/queue"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB gives each test its own in-memory store, the injected-handle
// isolation the services are designed for.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tweet{},
		&models.Like{},
		&models.Notification{},
	))

	return db
}

func newTestLogger() *logger.Logger {
	l := logger.NewLogger()
	l.SetOutput(io.Discard)
	return l
}

type testEnv struct {
	db    *gorm.DB
	users *UserService
	tweet *TweetService
	graph *GraphService
	feed  *FeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	pub := queue.NopPublisher{}

	userRepo := repository.NewUserRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	moderator := NewModerator(config.DefaultBannedWords)

	return &testEnv{
		db:    db,
		users: NewUserService(userRepo, pub, log),
		tweet: NewTweetService(tweetRepo, likeRepo, moderator, pub, log),
		graph: NewGraphService(userRepo, followRepo, notificationRepo, pub, log),
		feed:  NewFeedService(tweetRepo, notificationRepo, log),
	}
}

func (e *testEnv) register(t *testing.T, username, password string) *models.User {
	t.Helper()

	user, err := e.users.Register(context.Background(), &RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	return user
}
