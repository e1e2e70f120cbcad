package services

import (
	"context"
	"sort"
	"time"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/samber/lo"
)

// CommentService owns the per-post comment tree: traversal, the same-post
// parent invariant, cascading subtree deletion, and the notification
// fan-out to the post author and every ancestor-chain author.
type CommentService struct {
	store repositories.Store
	posts repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(store repositories.Store, posts repositories.PostRepository) *CommentService {
	return &CommentService{store: store, posts: posts}
}

// collectAncestors walks parent pointers from the comment to the root,
// immediate parent first.
func collectAncestors(store repositories.Store, comment *models.Comment) ([]models.Comment, error) {
	var ancestors []models.Comment
	seen := map[uint]bool{comment.ID: true}
	current := comment
	for current.ParentID != nil {
		if seen[*current.ParentID] {
			return nil, conflictf("comment %d is part of a parent cycle", comment.ID)
		}
		parent, err := store.Comments().GetCommentByID(*current.ParentID)
		if err != nil {
			return nil, asNotFound(err, "parent comment %d", *current.ParentID)
		}
		seen[parent.ID] = true
		ancestors = append(ancestors, *parent)
		current = parent
	}
	return ancestors, nil
}

// collectDescendants gathers the full subtree below a comment via DFS over
// child edges. The result excludes the comment itself.
func collectDescendants(store repositories.Store, commentID uint) ([]models.Comment, error) {
	collected := make(map[uint]models.Comment)
	stack := []uint{commentID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children, err := store.Comments().GetChildren(id)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if _, ok := collected[child.ID]; ok {
				continue
			}
			collected[child.ID] = child
			stack = append(stack, child.ID)
		}
	}
	return lo.Values(collected), nil
}

// notifyTargets is the set of users to re-notify when a comment appears or
// disappears: the post author plus every ancestor author, deduplicated.
func notifyTargets(store repositories.Store, comment *models.Comment, postAuthorID uint) ([]uint, error) {
	targets := []uint{postAuthorID}
	if comment.ParentID != nil {
		ancestors, err := collectAncestors(store, comment)
		if err != nil {
			return nil, err
		}
		for _, a := range ancestors {
			targets = append(targets, a.UserID)
		}
	}
	return lo.Uniq(targets), nil
}

// pushReceivedComments re-pushes the received-comments counter for each
// target user through a notification service bound to the same store.
func (s *CommentService) pushReceivedComments(ctx context.Context, store repositories.Store, targetIDs []uint) error {
	notifications := NewNotificationService(store, s.posts)
	for _, id := range targetIDs {
		user, err := store.Users().GetUserByID(id)
		if err != nil {
			return asNotFound(err, "user %d", id)
		}
		if err := notifications.PushReceivedComments(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

// GetComment retrieves a single comment.
func (s *CommentService) GetComment(id uint) (*models.Comment, error) {
	comment, err := s.store.Comments().GetCommentByID(id)
	if err != nil {
		return nil, asNotFound(err, "comment %d", id)
	}
	return comment, nil
}

// GetAncestors returns the comment's ancestor chain, immediate parent first.
func (s *CommentService) GetAncestors(comment *models.Comment) ([]models.Comment, error) {
	return collectAncestors(s.store, comment)
}

// GetDescendants returns every comment below the given one, sorted by timestamp.
func (s *CommentService) GetDescendants(comment *models.Comment) ([]models.Comment, error) {
	descendants, err := collectDescendants(s.store, comment.ID)
	if err != nil {
		return nil, err
	}
	sortCommentsByTime(descendants)
	return descendants, nil
}

func sortCommentsByTime(comments []models.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
}

// CreateComment adds a comment to a post, optionally under a parent comment
// on the same post, and re-pushes the received-comments counter of the post
// author and every ancestor author in the same transaction.
func (s *CommentService) CreateComment(ctx context.Context, author *models.User, req models.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.posts.GetPostByID(ctx, req.PostID)
	if err != nil {
		return nil, notFoundf("post %s", req.PostID)
	}

	comment := &models.Comment{
		PostID:    req.PostID,
		UserID:    author.ID,
		ParentID:  req.ParentID,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}

	if req.ParentID != nil {
		parent, err := s.store.Comments().GetCommentByID(*req.ParentID)
		if err != nil {
			return nil, asNotFound(err, "parent comment %d", *req.ParentID)
		}
		if parent.PostID != req.PostID {
			return nil, invalidf("parent comment %d belongs to another post", parent.ID)
		}
		// A parent chain must terminate at a root; the walk also rejects
		// a malformed chain before the new node joins it.
		if _, err := collectAncestors(s.store, parent); err != nil {
			return nil, err
		}
	}

	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Comments().CreateComment(comment); err != nil {
			return err
		}
		targets, err := notifyTargets(tx, comment, post.AuthorID)
		if err != nil {
			return err
		}
		return s.pushReceivedComments(ctx, tx, targets)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment edits a comment's body. Allowed for the comment author and
// the post owner.
func (s *CommentService) UpdateComment(ctx context.Context, actor *models.User, id uint, body string) (*models.Comment, error) {
	comment, err := s.GetComment(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, comment); err != nil {
		return nil, err
	}
	comment.Body = body
	comment.UpdatedAt = time.Now()
	if err := s.store.Comments().UpdateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment and its whole subtree, then re-pushes the
// received-comments counter of the same target set a creation would notify.
func (s *CommentService) DeleteComment(ctx context.Context, actor *models.User, id uint) error {
	comment, err := s.GetComment(id)
	if err != nil {
		return err
	}
	post, err := s.posts.GetPostByID(ctx, comment.PostID)
	if err != nil {
		return notFoundf("post %s", comment.PostID)
	}
	if actor.ID != comment.UserID && actor.ID != post.AuthorID {
		return forbiddenf("user %d may not delete comment %d", actor.ID, id)
	}

	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		// Target set must be collected before the tree loses the node.
		targets, err := notifyTargets(tx, comment, post.AuthorID)
		if err != nil {
			return err
		}
		descendants, err := collectDescendants(tx, comment.ID)
		if err != nil {
			return err
		}
		ids := append(lo.Map(descendants, func(c models.Comment, _ int) uint { return c.ID }), comment.ID)
		if err := tx.Likes().DeleteLikesByCommentIDs(ids); err != nil {
			return err
		}
		if err := tx.Comments().DeleteComments(ids); err != nil {
			return err
		}
		return s.pushReceivedComments(ctx, tx, targets)
	})
}

// LikeComment records a like edge; already liking is a no-op.
func (s *CommentService) LikeComment(user *models.User, id uint) error {
	comment, err := s.GetComment(id)
	if err != nil {
		return err
	}
	liked, err := s.store.Likes().HasCommentLike(comment.ID, user.ID)
	if err != nil || liked {
		return err
	}
	return s.store.Likes().CreateCommentLike(&models.CommentLike{
		CommentID: comment.ID,
		UserID:    user.ID,
		CreatedAt: time.Now(),
	})
}

// UnlikeComment removes the like edge; not liking is a no-op.
func (s *CommentService) UnlikeComment(user *models.User, id uint) error {
	comment, err := s.GetComment(id)
	if err != nil {
		return err
	}
	liked, err := s.store.Likes().HasCommentLike(comment.ID, user.ID)
	if err != nil || !liked {
		return err
	}
	return s.store.Likes().DeleteCommentLike(comment.ID, user.ID)
}

// PostComments returns a page of a post's root comments, newest root first,
// each flattened with its descendants in timestamp order.
func (s *CommentService) PostComments(ctx context.Context, postID string, offset, limit int) ([]models.CommentWithDescendants, int64, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, 0, notFoundf("post %s", postID)
	}
	roots, total, err := s.store.Comments().GetRootsByPostID(postID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]models.CommentWithDescendants, 0, len(roots))
	for _, root := range roots {
		descendants, err := collectDescendants(s.store, root.ID)
		if err != nil {
			return nil, 0, err
		}
		sortCommentsByTime(descendants)
		out = append(out, models.CommentWithDescendants{Comment: root, Descendants: descendants})
	}
	return out, total, nil
}

func (s *CommentService) authorize(ctx context.Context, actor *models.User, comment *models.Comment) error {
	if actor.ID == comment.UserID {
		return nil
	}
	post, err := s.posts.GetPostByID(ctx, comment.PostID)
	if err != nil {
		return notFoundf("post %s", comment.PostID)
	}
	if actor.ID != post.AuthorID {
		return forbiddenf("user %d may not modify comment %d", actor.ID, comment.ID)
	}
	return nil
}
