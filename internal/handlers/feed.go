package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minitwitter/minitwitter/internal/middleware"
	"github.com/minitwitter/minitwitter/internal/services"
)

type FeedHandler struct {
	tweetService *services.TweetService
	feedService  *services.FeedService
}

func NewFeedHandler(tweetService *services.TweetService, feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{
		tweetService: tweetService,
		feedService:  feedService,
	}
}

func (h *FeedHandler) CreateTweet(c *gin.Context) {
	authorID := middleware.GetUserID(c)
	if authorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tweet, err := h.tweetService.Create(c.Request.Context(), authorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tweet cannot be empty."})
		case errors.Is(err, services.ErrContentTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tweet too long."})
		case errors.Is(err, services.ErrModerationBlocked):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tweet blocked by moderation."})
		case errors.Is(err, services.ErrDuplicatePost):
			c.JSON(http.StatusConflict, gin.H{"error": "You already posted this."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tweet posted.",
		"tweet":   tweet,
	})
}

// DeleteTweet answers 200 even when nothing was deleted: a delete of a
// tweet you don't own is a silent no-op, not an error.
func (h *FeedHandler) DeleteTweet(c *gin.Context) {
	requesterID := middleware.GetUserID(c)
	if requesterID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.tweetService.Delete(c.Request.Context(), requesterID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tweet deleted."})
}

func (h *FeedHandler) LikeTweet(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	likes, err := h.tweetService.Like(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Liked.",
		"likes":   likes,
	})
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	feed, err := h.feedService.HomeFeed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feed": feed})
}
