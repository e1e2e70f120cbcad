package services

import (
	"context"
	"sort"
	"time"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/samber/lo"
)

// MessageService owns private messaging: sending with the unread push,
// pairwise history assembly, and the inbox grouped by counterpart.
type MessageService struct {
	store repositories.Store
	posts repositories.PostRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(store repositories.Store, posts repositories.PostRepository) *MessageService {
	return &MessageService{store: store, posts: posts}
}

// SendMessage delivers a private message and re-pushes the recipient's
// unread-messages counter in the same transaction. Self-messages are
// rejected, as are messages to a recipient who blocks the sender.
func (s *MessageService) SendMessage(ctx context.Context, sender *models.User, req models.CreateMessageRequest) (*models.Message, error) {
	if req.RecipientID == sender.ID {
		return nil, invalidf("cannot send a private message to yourself")
	}
	recipient, err := s.store.Users().GetUserByID(req.RecipientID)
	if err != nil {
		return nil, asNotFound(err, "user %d", req.RecipientID)
	}
	blocking, err := s.store.Blocks().IsBlocking(recipient.ID, sender.ID)
	if err != nil {
		return nil, err
	}
	if blocking {
		return nil, forbiddenf("user %d does not accept messages from user %d", recipient.ID, sender.ID)
	}

	message := &models.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Body:        req.Body,
		CreatedAt:   time.Now(),
	}
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Messages().CreateMessage(message); err != nil {
			return err
		}
		return NewNotificationService(tx, s.posts).PushReceivedMessages(recipient)
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// GetMessage retrieves a message; only its sender or recipient may read it.
func (s *MessageService) GetMessage(actor *models.User, id uint) (*models.Message, error) {
	message, err := s.store.Messages().GetMessageByID(id)
	if err != nil {
		return nil, asNotFound(err, "message %d", id)
	}
	if actor.ID != message.SenderID && actor.ID != message.RecipientID {
		return nil, forbiddenf("user %d may not read message %d", actor.ID, id)
	}
	return message, nil
}

// UpdateMessage edits a sent message; sender only.
func (s *MessageService) UpdateMessage(actor *models.User, id uint, body string) (*models.Message, error) {
	message, err := s.store.Messages().GetMessageByID(id)
	if err != nil {
		return nil, asNotFound(err, "message %d", id)
	}
	if actor.ID != message.SenderID {
		return nil, forbiddenf("user %d may not edit message %d", actor.ID, id)
	}
	message.Body = body
	message.UpdatedAt = time.Now()
	if err := s.store.Messages().UpdateMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}

// DeleteMessage removes a sent message (sender only) and re-pushes the
// recipient's unread counter, since the deleted message may have been unread.
func (s *MessageService) DeleteMessage(ctx context.Context, actor *models.User, id uint) error {
	message, err := s.store.Messages().GetMessageByID(id)
	if err != nil {
		return asNotFound(err, "message %d", id)
	}
	if actor.ID != message.SenderID {
		return forbiddenf("user %d may not delete message %d", actor.ID, id)
	}
	recipient, err := s.store.Users().GetUserByID(message.RecipientID)
	if err != nil {
		return asNotFound(err, "user %d", message.RecipientID)
	}
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Messages().DeleteMessage(id); err != nil {
			return err
		}
		return NewNotificationService(tx, s.posts).PushReceivedMessages(recipient)
	})
}

// HistoryBetween returns the full conversation between two users, both
// directions merged ascending by timestamp.
func (s *MessageService) HistoryBetween(userA, userB uint) ([]models.Message, error) {
	return s.store.Messages().GetBetween(userA, userB)
}

// Conversations groups the viewer's messages by counterpart, keeping the
// latest message per counterpart. A group is new when its latest received
// message is beyond the viewer's watermark. Groups sort ascending by
// timestamp, with new groups stably moved to the front so advancing the
// watermark cannot silently bury older unread conversations.
func (s *MessageService) Conversations(viewer *models.User) ([]models.Conversation, error) {
	messages, err := s.store.Messages().GetInvolving(viewer.ID)
	if err != nil {
		return nil, err
	}

	type group struct {
		last         models.Message
		lastReceived *models.Message
	}
	groups := make(map[uint]*group)
	for i := range messages {
		m := messages[i]
		counterpartID := m.SenderID
		if counterpartID == viewer.ID {
			counterpartID = m.RecipientID
		}
		g, ok := groups[counterpartID]
		if !ok {
			g = &group{}
			groups[counterpartID] = g
		}
		g.last = m // ascending scan keeps the newest
		if m.RecipientID == viewer.ID {
			received := m
			g.lastReceived = &received
		}
	}

	conversations := make([]models.Conversation, 0, len(groups))
	for counterpartID, g := range groups {
		counterpart, err := s.store.Users().GetUserByID(counterpartID)
		if err != nil {
			return nil, asNotFound(err, "user %d", counterpartID)
		}
		isNew := g.lastReceived != nil && g.lastReceived.CreatedAt.After(viewer.LastMessagesRead)
		conversations = append(conversations, models.Conversation{
			Counterpart: *counterpart,
			LastMessage: g.last,
			IsNew:       isNew,
		})
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.Before(conversations[j].LastMessage.CreatedAt)
	})
	fresh := lo.Filter(conversations, func(c models.Conversation, _ int) bool { return c.IsNew })
	rest := lo.Filter(conversations, func(c models.Conversation, _ int) bool { return !c.IsNew })
	return append(fresh, rest...), nil
}

// ReceivedMessages returns a page of the viewer's received messages plus the
// total count.
func (s *MessageService) ReceivedMessages(viewer *models.User, offset, limit int) ([]models.Message, int64, error) {
	return s.store.Messages().GetReceived(viewer.ID, offset, limit)
}
