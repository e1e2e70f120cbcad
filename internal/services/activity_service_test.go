package services

import (
	"context"
	"testing"
	"time"

	"github.com/bloghive/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReceivedMessagesPartialPageKeepsWatermark(t *testing.T) {
	store := newMemStore()
	posts := newMemPosts()
	alice := store.addUser("alice")
	bob := store.addUser("bob")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		store.addMessage(alice, bob, base.Add(time.Duration(i)*time.Minute))
	}

	svc := NewActivityService(store, posts)
	page, total, err := svc.ReadReceivedMessages(context.Background(), bob, 1, 3)
	require.NoError(t, err)
	assert.Len(t, page, 3)
	assert.Equal(t, int64(5), total)

	// 3 of 5 unread shown: counter drops to 2, watermark stays put.
	assert.Equal(t, 2, counterValue(t, store, bob.ID, models.NotifMessages))
	assert.True(t, store.users[bob.ID].LastMessagesRead.IsZero())
	assert.True(t, bob.LastMessagesRead.IsZero())
}

func TestReadReceivedMessagesFinalPageAdvancesWatermark(t *testing.T) {
	store := newMemStore()
	posts := newMemPosts()
	alice := store.addUser("alice")
	bob := store.addUser("bob")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		store.addMessage(alice, bob, base.Add(time.Duration(i)*time.Minute))
	}

	svc := NewActivityService(store, posts)
	page, total, err := svc.ReadReceivedMessages(context.Background(), bob, 2, 3)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, int64(5), total)

	assert.Equal(t, 0, counterValue(t, store, bob.ID, models.NotifMessages))
	assert.False(t, store.users[bob.ID].LastMessagesRead.IsZero())

	// Everything is read now; the next partial view has nothing unread left.
	unread, err := NewNotificationService(store, posts).NewReceivedMessages(bob)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestReadReceivedCommentsSettles(t *testing.T) {
	store := newMemStore()
	posts := newMemPosts()
	alice := store.addUser("alice")
	bob := store.addUser("bob")

	base := time.Now().Add(-time.Hour)
	post := posts.addPost(alice, base)
	store.addComment(post.ID.Hex(), bob, nil, base.Add(1*time.Minute))
	store.addComment(post.ID.Hex(), bob, nil, base.Add(2*time.Minute))

	svc := NewActivityService(store, posts)
	page, total, err := svc.ReadReceivedComments(context.Background(), alice, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 0, counterValue(t, store, alice.ID, models.NotifReceivedComments))
	assert.False(t, store.users[alice.ID].LastReceivedCommentsRead.IsZero())
}

func TestReadFollowersSettles(t *testing.T) {
	store := newMemStore()
	posts := newMemPosts()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	carol := store.addUser("carol")

	now := time.Now()
	store.follows = append(store.follows,
		models.Follow{ID: 1, FollowerID: bob.ID, FollowedID: alice.ID, CreatedAt: now},
		models.Follow{ID: 2, FollowerID: carol.ID, FollowedID: alice.ID, CreatedAt: now},
	)

	svc := NewActivityService(store, posts)
	page, total, err := svc.ReadFollowers(context.Background(), alice, 1, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, int64(2), total)
	// One of two shown: one unread left, watermark untouched.
	assert.Equal(t, 1, counterValue(t, store, alice.ID, models.NotifFollows))
	assert.True(t, store.users[alice.ID].LastFollowsRead.IsZero())
}

func TestReadPostsLikesSettles(t *testing.T) {
	store := newMemStore()
	posts := newMemPosts()
	alice := store.addUser("alice")
	bob := store.addUser("bob")

	base := time.Now().Add(-time.Hour)
	post := posts.addPost(alice, base)
	store.postLikes = append(store.postLikes,
		models.PostLike{ID: 1, PostID: post.ID.Hex(), UserID: bob.ID, CreatedAt: base.Add(time.Minute)},
	)

	svc := NewActivityService(store, posts)
	page, total, err := svc.ReadPostsLikes(context.Background(), alice, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 0, counterValue(t, store, alice.ID, models.NotifPostsLikes))
	assert.False(t, store.users[alice.ID].LastPostsLikesRead.IsZero())
}

func TestReadFollowedPostsSettles(t *testing.T) {
	store := newMemStore()
	posts := newMemPosts()
	alice := store.addUser("alice")
	bob := store.addUser("bob")

	base := time.Now().Add(-time.Hour)
	store.follows = append(store.follows,
		models.Follow{ID: 1, FollowerID: alice.ID, FollowedID: bob.ID, CreatedAt: base},
	)
	posts.addPost(bob, base.Add(1*time.Minute))
	posts.addPost(bob, base.Add(2*time.Minute))

	svc := NewActivityService(store, posts)
	page, total, err := svc.ReadFollowedPosts(context.Background(), alice, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 0, counterValue(t, store, alice.ID, models.NotifFollowedsPosts))
	assert.False(t, store.users[alice.ID].LastFollowedsPostsRead.IsZero())
}
