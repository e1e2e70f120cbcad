package services

import (
	"context"
	"time"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
)

// PostService owns posts and their like edges. Posts live in MongoDB;
// comments, likes and notifications live in PostgreSQL, so the Mongo write
// happens first and the relational fan-out runs in one transaction after it.
type PostService struct {
	store repositories.Store
	posts repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(store repositories.Store, posts repositories.PostRepository) *PostService {
	return &PostService{store: store, posts: posts}
}

// CreatePost stores a new post and pushes the followed-posts counter to
// every follower of the author.
func (s *PostService) CreatePost(ctx context.Context, author *models.User, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: author.ID,
		Title:    req.Title,
		Summary:  req.Summary,
		Body:     req.Body,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	if err := s.pushFollowedsPosts(ctx, author.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost retrieves a post, bumping its view counter when asked.
func (s *PostService) GetPost(ctx context.Context, id string, countView bool) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, notFoundf("post %s", id)
	}
	if countView {
		if err := s.posts.IncrementViews(ctx, id); err != nil {
			return nil, err
		}
		post.Views++
	}
	return post, nil
}

// LikeCount returns the number of like edges on a post.
func (s *PostService) LikeCount(ctx context.Context, id string) (int64, error) {
	if _, err := s.posts.GetPostByID(ctx, id); err != nil {
		return 0, notFoundf("post %s", id)
	}
	return s.store.Likes().CountPostLikes(id)
}

// ListPosts returns a page of all posts, newest first, plus the total count.
func (s *PostService) ListPosts(ctx context.Context, offset, limit int64) ([]models.Post, int64, error) {
	return s.posts.GetAllPosts(ctx, offset, limit)
}

// PostsByAuthor returns a page of one author's posts, newest first.
func (s *PostService) PostsByAuthor(ctx context.Context, authorID uint, offset, limit int64) ([]models.Post, error) {
	return s.posts.GetPostsByAuthorID(ctx, authorID, offset, limit)
}

// FollowedPosts returns a page of posts by users the viewer follows, newest
// first, plus the total count.
func (s *PostService) FollowedPosts(ctx context.Context, viewer *models.User, offset, limit int64) ([]models.Post, int64, error) {
	followedIDs, err := s.store.Follows().GetFollowedIDs(viewer.ID)
	if err != nil {
		return nil, 0, err
	}
	return s.posts.GetPostsByAuthorIDs(ctx, followedIDs, offset, limit)
}

// UpdatePost edits a post; author only.
func (s *PostService) UpdatePost(ctx context.Context, actor *models.User, id string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, notFoundf("post %s", id)
	}
	if post.AuthorID != actor.ID {
		return nil, forbiddenf("user %d may not edit post %s", actor.ID, id)
	}
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Summary != "" {
		post.Summary = req.Summary
	}
	if req.Body != "" {
		post.Body = req.Body
	}
	if err := s.posts.UpdatePost(ctx, id, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post, its comment forest and its like edges, then
// pushes the followed-posts counter to the author's followers so their
// unread counts shrink with the post.
func (s *PostService) DeletePost(ctx context.Context, actor *models.User, id string) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return notFoundf("post %s", id)
	}
	if post.AuthorID != actor.ID {
		return forbiddenf("user %d may not delete post %s", actor.ID, id)
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		comments, err := tx.Comments().GetCommentsByPostIDs([]string{id})
		if err != nil {
			return err
		}
		commentIDs := make([]uint, len(comments))
		for i, c := range comments {
			commentIDs[i] = c.ID
		}
		if err := tx.Likes().DeleteLikesByCommentIDs(commentIDs); err != nil {
			return err
		}
		if err := tx.Comments().DeleteCommentsByPostID(id); err != nil {
			return err
		}
		return tx.Likes().DeleteLikesByPostID(id)
	})
	if err != nil {
		return err
	}
	return s.pushFollowedsPosts(ctx, post.AuthorID)
}

// LikePost records a like edge and pushes the post author's likes counter.
// Already liking is a no-op.
func (s *PostService) LikePost(ctx context.Context, user *models.User, id string) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return notFoundf("post %s", id)
	}
	liked, err := s.store.Likes().HasPostLike(id, user.ID)
	if err != nil || liked {
		return err
	}
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		like := &models.PostLike{PostID: id, UserID: user.ID, CreatedAt: time.Now()}
		if err := tx.Likes().CreatePostLike(like); err != nil {
			return err
		}
		return s.pushPostsLikes(ctx, tx, post.AuthorID)
	})
}

// UnlikePost removes the like edge and re-pushes the author's counter. Not
// liking is a no-op.
func (s *PostService) UnlikePost(ctx context.Context, user *models.User, id string) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return notFoundf("post %s", id)
	}
	liked, err := s.store.Likes().HasPostLike(id, user.ID)
	if err != nil || !liked {
		return err
	}
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Likes().DeletePostLike(id, user.ID); err != nil {
			return err
		}
		return s.pushPostsLikes(ctx, tx, post.AuthorID)
	})
}

func (s *PostService) pushPostsLikes(ctx context.Context, store repositories.Store, authorID uint) error {
	author, err := store.Users().GetUserByID(authorID)
	if err != nil {
		return asNotFound(err, "user %d", authorID)
	}
	return NewNotificationService(store, s.posts).PushPostsLikes(ctx, author)
}

func (s *PostService) pushFollowedsPosts(ctx context.Context, authorID uint) error {
	followers, err := s.store.Follows().GetFollowers(authorID)
	if err != nil {
		return err
	}
	notifications := NewNotificationService(s.store, s.posts)
	for i := range followers {
		if err := notifications.PushFollowedsPosts(ctx, &followers[i]); err != nil {
			return err
		}
	}
	return nil
}
