package services

import (
	"context"
	"time"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
)

// ActivityService serves the "what happened since I last looked" read
// endpoints and owns watermark advancement. The rule, for every activity
// kind: a watermark only moves to now once the viewer has paged to the end
// of the unread items (page*perPage >= total unread). A partial view leaves
// the watermark alone and re-pushes the count reduced by the items shown,
// so older unread items cannot be silently marked read.
type ActivityService struct {
	store repositories.Store
	posts repositories.PostRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(store repositories.Store, posts repositories.PostRepository) *ActivityService {
	return &ActivityService{store: store, posts: posts}
}

// settle applies the watermark policy after a page view. advance mutates
// the watermark field on the user; it only runs when the viewer has seen
// every unread item.
func (s *ActivityService) settle(ctx context.Context, user *models.User, name string, totalUnread int64, page, perPage int, advance func(*models.User)) error {
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		notifications := NewNotificationService(tx, s.posts)
		if int64(page*perPage) >= totalUnread {
			advance(user)
			if err := tx.Users().UpdateUser(user); err != nil {
				return err
			}
			_, err := notifications.Push(user.ID, name, 0)
			return err
		}
		remaining := totalUnread - int64(page*perPage)
		_, err := notifications.Push(user.ID, name, remaining)
		return err
	})
}

func paginate[T any](items []T, page, perPage int) []T {
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ReadReceivedComments returns a page of comments addressed to the viewer,
// newest first, applying the watermark policy.
func (s *ActivityService) ReadReceivedComments(ctx context.Context, viewer *models.User, page, perPage int) ([]models.Comment, int64, error) {
	notifications := NewNotificationService(s.store, s.posts)
	comments, err := notifications.ReceivedComments(ctx, viewer)
	if err != nil {
		return nil, 0, err
	}
	unread, err := notifications.NewReceivedComments(ctx, viewer)
	if err != nil {
		return nil, 0, err
	}
	err = s.settle(ctx, viewer, models.NotifReceivedComments, unread, page, perPage, func(u *models.User) {
		u.LastReceivedCommentsRead = time.Now()
	})
	if err != nil {
		return nil, 0, err
	}
	return paginate(comments, page, perPage), int64(len(comments)), nil
}

// ReadReceivedMessages returns a page of the viewer's received messages,
// newest first, applying the watermark policy.
func (s *ActivityService) ReadReceivedMessages(ctx context.Context, viewer *models.User, page, perPage int) ([]models.Message, int64, error) {
	messages, total, err := s.store.Messages().GetReceived(viewer.ID, (page-1)*perPage, perPage)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.store.Messages().CountReceivedSince(viewer.ID, viewer.LastMessagesRead)
	if err != nil {
		return nil, 0, err
	}
	err = s.settle(ctx, viewer, models.NotifMessages, unread, page, perPage, func(u *models.User) {
		u.LastMessagesRead = time.Now()
	})
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// ReadPostsLikes returns a page of like edges on the viewer's posts, newest
// first, applying the watermark policy.
func (s *ActivityService) ReadPostsLikes(ctx context.Context, viewer *models.User, page, perPage int) ([]models.PostLike, int64, error) {
	postIDs, err := s.posts.GetPostIDsByAuthorID(ctx, viewer.ID)
	if err != nil {
		return nil, 0, err
	}
	likes, err := s.store.Likes().GetPostLikesSince(postIDs, viewer.ID, time.Time{})
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.store.Likes().CountPostLikesSince(postIDs, viewer.ID, viewer.LastPostsLikesRead)
	if err != nil {
		return nil, 0, err
	}
	err = s.settle(ctx, viewer, models.NotifPostsLikes, unread, page, perPage, func(u *models.User) {
		u.LastPostsLikesRead = time.Now()
	})
	if err != nil {
		return nil, 0, err
	}
	return paginate(likes, page, perPage), int64(len(likes)), nil
}

// ReadFollowers returns a page of the viewer's followers, applying the
// watermark policy.
func (s *ActivityService) ReadFollowers(ctx context.Context, viewer *models.User, page, perPage int) ([]models.User, int64, error) {
	followers, err := s.store.Follows().GetFollowers(viewer.ID)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.store.Follows().CountFollowersSince(viewer.ID, viewer.LastFollowsRead)
	if err != nil {
		return nil, 0, err
	}
	err = s.settle(ctx, viewer, models.NotifFollows, unread, page, perPage, func(u *models.User) {
		u.LastFollowsRead = time.Now()
	})
	if err != nil {
		return nil, 0, err
	}
	return paginate(followers, page, perPage), int64(len(followers)), nil
}

// ReadFollowedPosts returns a page of posts by users the viewer follows,
// newest first, applying the watermark policy.
func (s *ActivityService) ReadFollowedPosts(ctx context.Context, viewer *models.User, page, perPage int) ([]models.Post, int64, error) {
	followedIDs, err := s.store.Follows().GetFollowedIDs(viewer.ID)
	if err != nil {
		return nil, 0, err
	}
	posts, total, err := s.posts.GetPostsByAuthorIDs(ctx, followedIDs, int64((page-1)*perPage), int64(perPage))
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.posts.CountByAuthorIDsSince(ctx, followedIDs, viewer.LastFollowedsPostsRead)
	if err != nil {
		return nil, 0, err
	}
	err = s.settle(ctx, viewer, models.NotifFollowedsPosts, unread, page, perPage, func(u *models.User) {
		u.LastFollowedsPostsRead = time.Now()
	})
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
