package services

import (
	"context"
	"testing"
	"time"

	"github.com/bloghive/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageRejectsSelf(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	svc := NewMessageService(store, newMemPosts())

	_, err := svc.SendMessage(context.Background(), alice, models.CreateMessageRequest{
		RecipientID: alice.ID,
		Body:        "hi me",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendMessageBlockedRecipient(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	store.blocks = append(store.blocks, models.Block{ID: 1, BlockerID: bob.ID, BlockedID: alice.ID})

	svc := NewMessageService(store, newMemPosts())
	_, err := svc.SendMessage(context.Background(), alice, models.CreateMessageRequest{
		RecipientID: bob.ID,
		Body:        "hello",
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, store.messages)
}

func TestSendMessagePushesUnreadCounter(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")

	svc := NewMessageService(store, newMemPosts())
	message, err := svc.SendMessage(context.Background(), alice, models.CreateMessageRequest{
		RecipientID: bob.ID,
		Body:        "hello",
	})
	require.NoError(t, err)
	assert.NotZero(t, message.ID)
	assert.Equal(t, 1, counterValue(t, store, bob.ID, models.NotifMessages))
	assert.Nil(t, store.lastNotification(alice.ID, models.NotifMessages))

	_, err = svc.SendMessage(context.Background(), alice, models.CreateMessageRequest{
		RecipientID: bob.ID,
		Body:        "again",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, counterValue(t, store, bob.ID, models.NotifMessages))
}

func TestDeleteMessageSenderOnlyAndRepush(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	svc := NewMessageService(store, newMemPosts())

	message, err := svc.SendMessage(context.Background(), alice, models.CreateMessageRequest{
		RecipientID: bob.ID,
		Body:        "oops",
	})
	require.NoError(t, err)

	err = svc.DeleteMessage(context.Background(), bob, message.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteMessage(context.Background(), alice, message.ID))
	assert.Empty(t, store.messages)
	assert.Equal(t, 0, counterValue(t, store, bob.ID, models.NotifMessages))
}

func TestHistoryBetweenMergesBothDirectionsAscending(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	carol := store.addUser("carol")

	base := time.Now().Add(-time.Hour)
	first := store.addMessage(alice, bob, base.Add(1*time.Minute))
	second := store.addMessage(bob, alice, base.Add(2*time.Minute))
	third := store.addMessage(alice, bob, base.Add(3*time.Minute))
	store.addMessage(alice, carol, base.Add(4*time.Minute))

	svc := NewMessageService(store, newMemPosts())
	history, err := svc.HistoryBetween(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, second.ID, history[1].ID)
	assert.Equal(t, third.ID, history[2].ID)
}

func TestConversationsGroupsAndFrontsNew(t *testing.T) {
	store := newMemStore()
	viewer := store.addUser("viewer")
	old := store.addUser("old")
	fresh := store.addUser("fresh")
	quiet := store.addUser("quiet")

	base := time.Now().Add(-time.Hour)
	// Conversation with old: last received before the watermark.
	store.addMessage(old, viewer, base.Add(1*time.Minute))
	oldLast := store.addMessage(viewer, old, base.Add(20*time.Minute))
	// Conversation with fresh: received after the watermark.
	freshLast := store.addMessage(fresh, viewer, base.Add(10*time.Minute))
	// Conversation with quiet: viewer only ever sent, nothing received.
	quietLast := store.addMessage(viewer, quiet, base.Add(30*time.Minute))

	viewer.LastMessagesRead = base.Add(5 * time.Minute)

	svc := NewMessageService(store, newMemPosts())
	conversations, err := svc.Conversations(viewer)
	require.NoError(t, err)
	require.Len(t, conversations, 3)

	// New conversation first, then the rest ascending by last message.
	assert.Equal(t, fresh.ID, conversations[0].Counterpart.ID)
	assert.True(t, conversations[0].IsNew)
	assert.Equal(t, freshLast.ID, conversations[0].LastMessage.ID)

	assert.Equal(t, old.ID, conversations[1].Counterpart.ID)
	assert.False(t, conversations[1].IsNew)
	assert.Equal(t, oldLast.ID, conversations[1].LastMessage.ID)

	assert.Equal(t, quiet.ID, conversations[2].Counterpart.ID)
	assert.False(t, conversations[2].IsNew)
	assert.Equal(t, quietLast.ID, conversations[2].LastMessage.ID)
}

func TestGetMessageParticipantsOnly(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	carol := store.addUser("carol")
	message := store.addMessage(alice, bob, time.Now())

	svc := NewMessageService(store, newMemPosts())

	_, err := svc.GetMessage(alice, message.ID)
	assert.NoError(t, err)
	_, err = svc.GetMessage(bob, message.ID)
	assert.NoError(t, err)
	_, err = svc.GetMessage(carol, message.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.GetMessage(alice, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
