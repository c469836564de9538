package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minitwitter/minitwitter/internal/models"
	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

// ExistsByAuthorAndContent reports whether the author has already posted
// this exact content.
func (r *TweetRepository) ExistsByAuthorAndContent(ctx context.Context, authorID uuid.UUID, content string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("author_id = ? AND content = ?", authorID, content).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check duplicate tweet: %w", err)
	}
	return count > 0, nil
}

// DeleteOwned deletes the tweet only when it belongs to authorID and removes
// its likes in the same transaction. Deleting zero rows is not an error.
func (r *TweetRepository) DeleteOwned(ctx context.Context, tweetID, authorID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND author_id = ?", tweetID, authorID).Delete(&models.Tweet{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		if deleted == 0 {
			return nil
		}
		return tx.Where("tweet_id = ?", tweetID).Delete(&models.Like{}).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete tweet: %w", err)
	}
	return deleted, nil
}

// Feed returns every tweet newest first, each with its author's current
// username and a like count computed at query time. Creation-time ties
// break on id so the ordering is deterministic.
func (r *TweetRepository) Feed(ctx context.Context) ([]models.FeedItem, error) {
	var items []models.FeedItem
	if err := r.db.WithContext(ctx).
		Table("tweets").
		Select(`tweets.id, tweets.author_id,
			COALESCE(users.username, 'Unknown') AS author,
			tweets.content, tweets.image_url, tweets.created_at,
			(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) AS like_count`).
		Joins("LEFT JOIN users ON users.id = tweets.author_id").
		Order("tweets.created_at DESC, tweets.id").
		Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return items, nil
}
