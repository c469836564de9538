package services

import (
	"context"
	"strings"
	"testing"

	"github.com/minitwitter/minitwitter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTweetValidationOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")

	_, err := env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{Content: ""})
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{
		Content: strings.Repeat("a", models.MaxTweetLength+1),
	})
	assert.ErrorIs(t, err, ErrContentTooLong)

	// Over-length wins over moderation: the gate is never consulted.
	_, err = env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{
		Content: "hate " + strings.Repeat("a", models.MaxTweetLength),
	})
	assert.ErrorIs(t, err, ErrContentTooLong)

	_, err = env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{Content: "I hate this"})
	assert.ErrorIs(t, err, ErrModerationBlocked)

	_, err = env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{Content: "hello world"})
	require.NoError(t, err)

	_, err = env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{Content: "hello world"})
	assert.ErrorIs(t, err, ErrDuplicatePost)
}

func TestCreateTweetAtLengthLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")

	tweet, err := env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{
		Content: strings.Repeat("a", models.MaxTweetLength),
	})
	require.NoError(t, err)
	assert.NotZero(t, tweet.CreatedAt)
}

func TestDuplicateContentDifferentAuthors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")
	bob := env.register(t, "bob", "pw2")

	_, err := env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{Content: "good morning"})
	require.NoError(t, err)

	// The duplicate check is per author.
	_, err = env.tweet.Create(ctx, bob.ID.String(), &CreateTweetRequest{Content: "good morning"})
	require.NoError(t, err)
}

func TestLikeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")
	bob := env.register(t, "bob", "pw2")

	tweet, err := env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{Content: "hello world"})
	require.NoError(t, err)

	likes, err := env.tweet.Like(ctx, bob.ID.String(), tweet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	// The repeat like reports the same count, not two.
	likes, err = env.tweet.Like(ctx, bob.ID.String(), tweet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	feed, err := env.feed.HomeFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, int64(1), feed[0].LikeCount)

	var likeRows int64
	require.NoError(t, env.db.Model(&models.Like{}).Count(&likeRows).Error)
	assert.Equal(t, int64(1), likeRows)
}

func TestDeleteTweetByAuthorCascadesLikes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")
	bob := env.register(t, "bob", "pw2")

	tweet, err := env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{Content: "hello world"})
	require.NoError(t, err)
	_, err = env.tweet.Like(ctx, bob.ID.String(), tweet.ID.String())
	require.NoError(t, err)

	require.NoError(t, env.tweet.Delete(ctx, alice.ID.String(), tweet.ID.String()))

	feed, err := env.feed.HomeFeed(ctx)
	require.NoError(t, err)
	assert.Empty(t, feed)

	var likeRows int64
	require.NoError(t, env.db.Model(&models.Like{}).Count(&likeRows).Error)
	assert.Zero(t, likeRows)
}

func TestDeleteTweetByNonAuthorIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")
	bob := env.register(t, "bob", "pw2")

	tweet, err := env.tweet.Create(ctx, alice.ID.String(), &CreateTweetRequest{Content: "hello world"})
	require.NoError(t, err)

	// No error surfaced, nothing deleted.
	require.NoError(t, env.tweet.Delete(ctx, bob.ID.String(), tweet.ID.String()))

	feed, err := env.feed.HomeFeed(ctx)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}
