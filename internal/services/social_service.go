package services

import (
	"context"
	"time"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
)

// SocialService owns the directed follow and block edges. Follows carry a
// timestamp feeding the new-followers counter; blocks gate messaging.
type SocialService struct {
	store repositories.Store
	posts repositories.PostRepository
}

// NewSocialService creates a new SocialService
func NewSocialService(store repositories.Store, posts repositories.PostRepository) *SocialService {
	return &SocialService{store: store, posts: posts}
}

// Follow creates a follow edge and pushes the target's new-followers
// counter. Self-follows are invalid; an existing edge is a conflict.
func (s *SocialService) Follow(ctx context.Context, follower *models.User, targetID uint) error {
	if follower.ID == targetID {
		return invalidf("cannot follow yourself")
	}
	target, err := s.store.Users().GetUserByID(targetID)
	if err != nil {
		return asNotFound(err, "user %d", targetID)
	}
	following, err := s.store.Follows().IsFollowing(follower.ID, targetID)
	if err != nil {
		return err
	}
	if following {
		return conflictf("already following user %d", targetID)
	}

	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		edge := &models.Follow{
			FollowerID: follower.ID,
			FollowedID: targetID,
			CreatedAt:  time.Now(),
		}
		if err := tx.Follows().CreateFollow(edge); err != nil {
			return err
		}
		return NewNotificationService(tx, s.posts).PushFollowers(target)
	})
}

// Unfollow removes a follow edge and re-pushes the target's counter. A
// missing edge is NotFound.
func (s *SocialService) Unfollow(ctx context.Context, follower *models.User, targetID uint) error {
	target, err := s.store.Users().GetUserByID(targetID)
	if err != nil {
		return asNotFound(err, "user %d", targetID)
	}
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Follows().DeleteFollow(follower.ID, targetID); err != nil {
			return asNotFound(err, "follow edge %d->%d", follower.ID, targetID)
		}
		return NewNotificationService(tx, s.posts).PushFollowers(target)
	})
}

// Block creates a block edge. Self-blocks are invalid; an existing edge is
// a conflict. Follow edges are left untouched.
func (s *SocialService) Block(blocker *models.User, targetID uint) error {
	if blocker.ID == targetID {
		return invalidf("cannot block yourself")
	}
	if _, err := s.store.Users().GetUserByID(targetID); err != nil {
		return asNotFound(err, "user %d", targetID)
	}
	blocking, err := s.store.Blocks().IsBlocking(blocker.ID, targetID)
	if err != nil {
		return err
	}
	if blocking {
		return conflictf("already blocking user %d", targetID)
	}
	return s.store.Blocks().CreateBlock(&models.Block{
		BlockerID: blocker.ID,
		BlockedID: targetID,
		CreatedAt: time.Now(),
	})
}

// Unblock removes a block edge; a missing edge is NotFound.
func (s *SocialService) Unblock(blocker *models.User, targetID uint) error {
	if err := s.store.Blocks().DeleteBlock(blocker.ID, targetID); err != nil {
		return asNotFound(err, "block edge %d->%d", blocker.ID, targetID)
	}
	return nil
}

// IsFollowing reports whether the follow edge exists.
func (s *SocialService) IsFollowing(followerID, targetID uint) (bool, error) {
	return s.store.Follows().IsFollowing(followerID, targetID)
}

// IsBlocking reports whether the block edge exists.
func (s *SocialService) IsBlocking(blockerID, targetID uint) (bool, error) {
	return s.store.Blocks().IsBlocking(blockerID, targetID)
}

// Followers lists the users following userID.
func (s *SocialService) Followers(userID uint) ([]models.User, error) {
	return s.store.Follows().GetFollowers(userID)
}

// Followeds lists the users userID follows.
func (s *SocialService) Followeds(userID uint) ([]models.User, error) {
	return s.store.Follows().GetFolloweds(userID)
}

// BlockedUsers lists the users userID blocks.
func (s *SocialService) BlockedUsers(userID uint) ([]models.User, error) {
	return s.store.Blocks().GetBlockedUsers(userID)
}
