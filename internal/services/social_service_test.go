package services

import (
	"context"
	"testing"

	"github.com/bloghive/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowPushesCounterAndConflictsOnRepeat(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	svc := NewSocialService(store, newMemPosts())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Follow(ctx, alice, alice.ID), ErrInvalidInput)
	assert.ErrorIs(t, svc.Follow(ctx, alice, 9999), ErrNotFound)

	require.NoError(t, svc.Follow(ctx, alice, bob.ID))
	following, err := svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, 1, counterValue(t, store, bob.ID, models.NotifFollows))

	assert.ErrorIs(t, svc.Follow(ctx, alice, bob.ID), ErrConflict)
	assert.Len(t, store.follows, 1)
}

func TestUnfollowRepushesAndMissingEdgeIsNotFound(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	svc := NewSocialService(store, newMemPosts())
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, alice, bob.ID))
	require.NoError(t, svc.Unfollow(ctx, alice, bob.ID))
	following, err := svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.Equal(t, 0, counterValue(t, store, bob.ID, models.NotifFollows))

	assert.ErrorIs(t, svc.Unfollow(ctx, alice, bob.ID), ErrNotFound)
}

func TestBlockLeavesFollowEdgeAlone(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	svc := NewSocialService(store, newMemPosts())
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, bob, alice.ID))
	require.NoError(t, svc.Block(alice, bob.ID))

	blocking, err := svc.IsBlocking(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, blocking)
	following, err := svc.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, following)

	assert.ErrorIs(t, svc.Block(alice, bob.ID), ErrConflict)
	assert.ErrorIs(t, svc.Block(alice, alice.ID), ErrInvalidInput)
}

func TestUnblock(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	svc := NewSocialService(store, newMemPosts())

	require.NoError(t, svc.Block(alice, bob.ID))
	require.NoError(t, svc.Unblock(alice, bob.ID))
	blocking, err := svc.IsBlocking(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, blocking)

	assert.ErrorIs(t, svc.Unblock(alice, bob.ID), ErrNotFound)
}

func TestFollowersAndFolloweds(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	carol := store.addUser("carol")
	svc := NewSocialService(store, newMemPosts())
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, bob, alice.ID))
	require.NoError(t, svc.Follow(ctx, carol, alice.ID))
	require.NoError(t, svc.Follow(ctx, alice, bob.ID))

	followers, err := svc.Followers(alice.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	followeds, err := svc.Followeds(alice.ID)
	require.NoError(t, err)
	require.Len(t, followeds, 1)
	assert.Equal(t, bob.ID, followeds[0].ID)
}
