package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxTweetLength = 280

type Tweet struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:uuid;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// Like carries no payload; the composite key is the whole row.
type Like struct {
	TweetID uuid.UUID `json:"tweet_id" gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
}

// FeedItem is a tweet as rendered in the global feed: joined with its
// author's current username and a like count computed at query time.
type FeedItem struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Tweet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Tweet) TableName() string {
	return "tweets"
}

func (Like) TableName() string {
	return "likes"
}
