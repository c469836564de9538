package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/minitwitter/minitwitter/internal/models"
	"github.com/minitwitter/minitwitter/internal/repository"
	"github.com/minitwitter/minitwitter/pkg/logger"
	"github.com/minitwitter/minitwitter/pkg/queue"
)

type TweetService struct {
	tweetRepo *repository.TweetRepository
	likeRepo  *repository.LikeRepository
	moderator *Moderator
	producer  queue.Publisher
	logger    *logger.Logger
}

func NewTweetService(tweetRepo *repository.TweetRepository, likeRepo *repository.LikeRepository, moderator *Moderator, producer queue.Publisher, logger *logger.Logger) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		likeRepo:  likeRepo,
		moderator: moderator,
		producer:  producer,
		logger:    logger,
	}
}

type CreateTweetRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// Create validates in a fixed short-circuit order: empty, over-length,
// moderation, verbatim duplicate by the same author.
func (s *TweetService) Create(ctx context.Context, authorID string, req *CreateTweetRequest) (*models.Tweet, error) {
	author, err := uuid.Parse(authorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %w", err)
	}

	if req.Content == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(req.Content) > models.MaxTweetLength {
		return nil, ErrContentTooLong
	}
	if !s.moderator.IsAllowed(req.Content) {
		return nil, ErrModerationBlocked
	}

	exists, err := s.tweetRepo.ExistsByAuthorAndContent(ctx, author, req.Content)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePost
	}

	tweet := &models.Tweet{
		AuthorID: author,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}

	event := queue.Event{
		Type:      queue.EventTweetPosted,
		Timestamp: tweet.CreatedAt,
		Data: map[string]interface{}{
			"tweet_id":  tweet.ID,
			"author_id": tweet.AuthorID,
		},
	}
	if err := s.producer.Publish(ctx, authorID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish tweet posted event")
	}

	s.logger.WithField("tweet_id", tweet.ID).Info("Tweet posted")
	return tweet, nil
}

// Delete removes the tweet only when requesterID is its author. A miss
// (wrong owner or unknown id) deletes zero rows and is not an error.
func (s *TweetService) Delete(ctx context.Context, requesterID, tweetID string) error {
	requester, err := uuid.Parse(requesterID)
	if err != nil {
		return fmt.Errorf("invalid requester ID: %w", err)
	}
	tweet, err := uuid.Parse(tweetID)
	if err != nil {
		return fmt.Errorf("invalid tweet ID: %w", err)
	}

	deleted, err := s.tweetRepo.DeleteOwned(ctx, tweet, requester)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return nil
	}

	event := queue.Event{
		Type: queue.EventTweetDeleted,
		Data: map[string]interface{}{
			"tweet_id":  tweetID,
			"author_id": requesterID,
		},
	}
	if err := s.producer.Publish(ctx, requesterID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish tweet deleted event")
	}

	s.logger.WithField("tweet_id", tweetID).Info("Tweet deleted")
	return nil
}

// Like is idempotent: a repeat like of the same tweet leaves exactly one
// like row and still succeeds. It returns the tweet's like count as of
// after the call.
func (s *TweetService) Like(ctx context.Context, userID, tweetID string) (int64, error) {
	user, err := uuid.Parse(userID)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	tweet, err := uuid.Parse(tweetID)
	if err != nil {
		return 0, fmt.Errorf("invalid tweet ID: %w", err)
	}

	like := &models.Like{
		TweetID: tweet,
		UserID:  user,
	}

	if err := s.likeRepo.Create(ctx, like); err != nil {
		return 0, err
	}

	count, err := s.likeRepo.CountByTweetID(ctx, tweet)
	if err != nil {
		return 0, err
	}

	event := queue.Event{
		Type: queue.EventTweetLiked,
		Data: map[string]interface{}{
			"tweet_id": tweetID,
			"user_id":  userID,
		},
	}
	if err := s.producer.Publish(ctx, userID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish tweet liked event")
	}

	return count, nil
}
