package services

import (
	"context"
	"testing"

	"github.com/minitwitter/minitwitter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")

	err := env.graph.Follow(ctx, alice.ID.String(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSelfFollowRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")

	err := env.graph.Follow(ctx, alice.ID.String(), "alice")
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowEmitsOneNotification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")
	bob := env.register(t, "bob", "pw2")

	require.NoError(t, env.graph.Follow(ctx, bob.ID.String(), "alice"))

	notifications, err := env.feed.Notifications(ctx, alice.ID.String())
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationFollow, notifications[0].Type)
	assert.Equal(t, "bob", notifications[0].FromUser)

	// A repeat follow succeeds but inserts nothing and notifies nobody.
	require.NoError(t, env.graph.Follow(ctx, bob.ID.String(), "alice"))

	notifications, err = env.feed.Notifications(ctx, alice.ID.String())
	require.NoError(t, err)
	assert.Len(t, notifications, 1)

	var followRows int64
	require.NoError(t, env.db.Model(&models.Follow{}).Count(&followRows).Error)
	assert.Equal(t, int64(1), followRows)
}

func TestUnfollowDecrementsCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")
	bob := env.register(t, "bob", "pw2")
	carol := env.register(t, "carol", "pw3")

	require.NoError(t, env.graph.Follow(ctx, bob.ID.String(), "alice"))
	require.NoError(t, env.graph.Follow(ctx, carol.ID.String(), "alice"))

	count, err := env.graph.FollowerCount(ctx, alice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, env.graph.Unfollow(ctx, bob.ID.String(), "alice"))

	count, err = env.graph.FollowerCount(ctx, alice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnfollowWithoutFollowIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw1")
	bob := env.register(t, "bob", "pw2")

	require.NoError(t, env.graph.Unfollow(ctx, bob.ID.String(), "alice"))

	count, err := env.graph.FollowerCount(ctx, alice.ID.String())
	require.NoError(t, err)
	assert.Zero(t, count)

	err = env.graph.Unfollow(ctx, bob.ID.String(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
