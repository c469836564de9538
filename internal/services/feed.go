package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minitwitter/minitwitter/internal/models"
	"github.com/minitwitter/minitwitter/internal/repository"
	"github.com/minitwitter/minitwitter/pkg/logger"
)

// FeedService is the read-only side: every call re-queries current state,
// nothing is cached.
type FeedService struct {
	tweetRepo        *repository.TweetRepository
	notificationRepo *repository.NotificationRepository
	logger           *logger.Logger
}

func NewFeedService(tweetRepo *repository.TweetRepository, notificationRepo *repository.NotificationRepository, logger *logger.Logger) *FeedService {
	return &FeedService{
		tweetRepo:        tweetRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// HomeFeed returns the entire tweet history, newest first, with live like
// counts. Pagination is an extension point, not a feature.
func (s *FeedService) HomeFeed(ctx context.Context) ([]models.FeedItem, error) {
	items, err := s.tweetRepo.Feed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed: %w", err)
	}
	return items, nil
}

func (s *FeedService) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	notifications, err := s.notificationRepo.GetByRecipient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, nil
}
