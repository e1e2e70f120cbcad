package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// NotificationService owns the notification ledger and the unread-activity
// counters. Counters are pure recomputations over current state and the
// user's watermark; every counter mutation reaches the client by pushing
// the fresh value into the ledger under the counter's canonical name.
type NotificationService struct {
	store repositories.Store
	posts repositories.PostRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(store repositories.Store, posts repositories.PostRepository) *NotificationService {
	return &NotificationService{store: store, posts: posts}
}

// nowTimestamp returns the current time as float seconds since epoch.
// Sub-second precision keeps notifications pushed within the same second
// ordered.
func nowTimestamp() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// Push replaces any notification the user holds under name with a new one
// carrying the JSON-encoded payload and the current timestamp.
func (s *NotificationService) Push(userID uint, name string, payload any) (*models.Notification, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s payload", name)
	}
	notification := &models.Notification{
		UserID:      userID,
		Name:        name,
		Timestamp:   nowTimestamp(),
		PayloadJSON: string(raw),
	}
	if err := s.store.Notifications().Replace(notification); err != nil {
		return nil, errors.Wrapf(err, "push %s for user %d", name, userID)
	}
	return notification, nil
}

// ListSince returns the user's notifications newer than since, ascending.
// Clients poll with the highest timestamp they have seen.
func (s *NotificationService) ListSince(userID uint, since float64) ([]models.Notification, error) {
	return s.store.Notifications().ListSince(userID, since)
}

// GetForUser returns a single notification, enforcing ownership.
func (s *NotificationService) GetForUser(user *models.User, id uint) (*models.Notification, error) {
	notification, err := s.store.Notifications().GetNotificationByID(id)
	if err != nil {
		return nil, asNotFound(err, "notification %d", id)
	}
	if notification.UserID != user.ID {
		return nil, forbiddenf("notification %d does not belong to user %d", id, user.ID)
	}
	return notification, nil
}

// ReceivedComments collects the comments addressed to the user: comments on
// the user's posts plus descendants of the user's own comments, excluding
// comments the user wrote. A comment matching both sources is counted once
// (plain union by ID). Sorted newest first.
func (s *NotificationService) ReceivedComments(ctx context.Context, user *models.User) ([]models.Comment, error) {
	postIDs, err := s.posts.GetPostIDsByAuthorID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list user post ids")
	}

	received := make(map[uint]models.Comment)
	onPosts, err := s.store.Comments().GetCommentsByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	for _, c := range onPosts {
		received[c.ID] = c
	}

	own, err := s.store.Comments().GetCommentsByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range own {
		descendants, err := collectDescendants(s.store, c.ID)
		if err != nil {
			return nil, err
		}
		for _, d := range descendants {
			received[d.ID] = d
		}
	}

	comments := lo.Values(received)
	comments = lo.Filter(comments, func(c models.Comment, _ int) bool {
		return c.UserID != user.ID
	})
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

// NewReceivedComments counts the received comments newer than the user's
// comments watermark.
func (s *NotificationService) NewReceivedComments(ctx context.Context, user *models.User) (int64, error) {
	comments, err := s.ReceivedComments(ctx, user)
	if err != nil {
		return 0, err
	}
	count := lo.CountBy(comments, func(c models.Comment) bool {
		return c.CreatedAt.After(user.LastReceivedCommentsRead)
	})
	return int64(count), nil
}

// NewReceivedMessages counts messages to the user newer than the messages watermark.
func (s *NotificationService) NewReceivedMessages(user *models.User) (int64, error) {
	return s.store.Messages().CountReceivedSince(user.ID, user.LastMessagesRead)
}

// NewPostsLikes counts likes on the user's posts newer than the likes
// watermark, excluding the user's own likes.
func (s *NotificationService) NewPostsLikes(ctx context.Context, user *models.User) (int64, error) {
	postIDs, err := s.posts.GetPostIDsByAuthorID(ctx, user.ID)
	if err != nil {
		return 0, errors.Wrap(err, "list user post ids")
	}
	return s.store.Likes().CountPostLikesSince(postIDs, user.ID, user.LastPostsLikesRead)
}

// NewFollowers counts follow edges targeting the user newer than the follows watermark.
func (s *NotificationService) NewFollowers(user *models.User) (int64, error) {
	return s.store.Follows().CountFollowersSince(user.ID, user.LastFollowsRead)
}

// NewFollowedsPosts counts posts by users the user follows newer than the
// followed-posts watermark.
func (s *NotificationService) NewFollowedsPosts(ctx context.Context, user *models.User) (int64, error) {
	followedIDs, err := s.store.Follows().GetFollowedIDs(user.ID)
	if err != nil {
		return 0, err
	}
	return s.posts.CountByAuthorIDsSince(ctx, followedIDs, user.LastFollowedsPostsRead)
}

// PushReceivedComments recomputes and pushes the user's received-comments counter.
func (s *NotificationService) PushReceivedComments(ctx context.Context, user *models.User) error {
	count, err := s.NewReceivedComments(ctx, user)
	if err != nil {
		return err
	}
	_, err = s.Push(user.ID, models.NotifReceivedComments, count)
	return err
}

// PushReceivedMessages recomputes and pushes the user's unread-messages counter.
func (s *NotificationService) PushReceivedMessages(user *models.User) error {
	count, err := s.NewReceivedMessages(user)
	if err != nil {
		return err
	}
	_, err = s.Push(user.ID, models.NotifMessages, count)
	return err
}

// PushPostsLikes recomputes and pushes the user's post-likes counter.
func (s *NotificationService) PushPostsLikes(ctx context.Context, user *models.User) error {
	count, err := s.NewPostsLikes(ctx, user)
	if err != nil {
		return err
	}
	_, err = s.Push(user.ID, models.NotifPostsLikes, count)
	return err
}

// PushFollowers recomputes and pushes the user's new-followers counter.
func (s *NotificationService) PushFollowers(user *models.User) error {
	count, err := s.NewFollowers(user)
	if err != nil {
		return err
	}
	_, err = s.Push(user.ID, models.NotifFollows, count)
	return err
}

// PushFollowedsPosts recomputes and pushes the user's followed-posts counter.
func (s *NotificationService) PushFollowedsPosts(ctx context.Context, user *models.User) error {
	count, err := s.NewFollowedsPosts(ctx, user)
	if err != nil {
		return err
	}
	_, err = s.Push(user.ID, models.NotifFollowedsPosts, count)
	return err
}
