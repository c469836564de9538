package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minitwitter/minitwitter/internal/models"
	"github.com/minitwitter/minitwitter/internal/repository"
	"github.com/minitwitter/minitwitter/pkg/logger"
	"github.com/minitwitter/minitwitter/pkg/queue"
)

type GraphService struct {
	userRepo         *repository.UserRepository
	followRepo       *repository.FollowRepository
	notificationRepo *repository.NotificationRepository
	producer         queue.Publisher
	logger           *logger.Logger
}

func NewGraphService(userRepo *repository.UserRepository, followRepo *repository.FollowRepository, notificationRepo *repository.NotificationRepository, producer queue.Publisher, logger *logger.Logger) *GraphService {
	return &GraphService{
		userRepo:         userRepo,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
		producer:         producer,
		logger:           logger,
	}
}

// Follow targets a username, not an id. Following an already-followed user
// succeeds without inserting anything, and the notification is emitted only
// when the follow row actually went in, so a repeat follow can never
// produce a second notification.
func (s *GraphService) Follow(ctx context.Context, followerID, targetUsername string) error {
	follower, err := uuid.Parse(followerID)
	if err != nil {
		return fmt.Errorf("invalid follower ID: %w", err)
	}

	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return fmt.Errorf("failed to resolve target user: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}
	if target.ID == follower {
		return ErrSelfFollow
	}

	followerUser, err := s.userRepo.GetByID(ctx, follower)
	if err != nil {
		return fmt.Errorf("failed to get follower: %w", err)
	}
	if followerUser == nil {
		return ErrUserNotFound
	}

	inserted, err := s.followRepo.Create(ctx, &models.Follow{
		FollowerID:  follower,
		FollowingID: target.ID,
	})
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}

	notification := &models.Notification{
		UserID:   target.ID,
		Type:     models.NotificationFollow,
		FromUser: followerUser.Username,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	event := queue.Event{
		Type: queue.EventFollowCreated,
		Data: map[string]interface{}{
			"follower_id":  followerID,
			"following_id": target.ID,
		},
	}
	if err := s.producer.Publish(ctx, followerID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish follow created event")
	}

	s.logger.WithFields(map[string]interface{}{
		"follower_id":  followerID,
		"following_id": target.ID,
	}).Info("User followed")

	return nil
}

// Unfollow succeeds whether or not the relationship existed.
func (s *GraphService) Unfollow(ctx context.Context, followerID, targetUsername string) error {
	follower, err := uuid.Parse(followerID)
	if err != nil {
		return fmt.Errorf("invalid follower ID: %w", err)
	}

	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return fmt.Errorf("failed to resolve target user: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	if err := s.followRepo.Delete(ctx, follower, target.ID); err != nil {
		return err
	}

	event := queue.Event{
		Type: queue.EventFollowDeleted,
		Data: map[string]interface{}{
			"follower_id":  followerID,
			"following_id": target.ID,
		},
	}
	if err := s.producer.Publish(ctx, followerID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish follow deleted event")
	}

	return nil
}

func (s *GraphService) FollowerCount(ctx context.Context, userID string) (int64, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}

	count, err := s.followRepo.CountFollowers(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}
