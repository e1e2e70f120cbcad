package repositories

import (
	"time"

	"github.com/bloghive/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for post and comment like edges
type LikeRepository interface {
	CreatePostLike(like *models.PostLike) error
	DeletePostLike(postID string, userID uint) error
	HasPostLike(postID string, userID uint) (bool, error)
	CountPostLikes(postID string) (int64, error)
	CountPostLikesSince(postIDs []string, excludeUserID uint, since time.Time) (int64, error)
	GetPostLikesSince(postIDs []string, excludeUserID uint, since time.Time) ([]models.PostLike, error)
	DeleteLikesByPostID(postID string) error

	CreateCommentLike(like *models.CommentLike) error
	DeleteCommentLike(commentID, userID uint) error
	HasCommentLike(commentID, userID uint) (bool, error)
	DeleteLikesByCommentIDs(commentIDs []uint) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreatePostLike creates a like edge on a post
func (r *PostgresLikeRepository) CreatePostLike(like *models.PostLike) error {
	return r.db.Create(like).Error
}

// DeletePostLike removes a like edge from a post
func (r *PostgresLikeRepository) DeletePostLike(postID string, userID uint) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasPostLike checks whether a user has liked a post
func (r *PostgresLikeRepository) HasPostLike(postID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountPostLikes counts the likes on a post
func (r *PostgresLikeRepository) CountPostLikes(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CountPostLikesSince counts like edges on the given posts newer than the
// watermark, excluding the post owner's own likes
func (r *PostgresLikeRepository) CountPostLikesSince(postIDs []string, excludeUserID uint, since time.Time) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.PostLike{}).
		Where("post_id IN ? AND user_id <> ? AND created_at > ?", postIDs, excludeUserID, since).
		Count(&count).Error
	return count, err
}

// GetPostLikesSince retrieves the like edges counted by CountPostLikesSince,
// newest first
func (r *PostgresLikeRepository) GetPostLikesSince(postIDs []string, excludeUserID uint, since time.Time) ([]models.PostLike, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var likes []models.PostLike
	err := r.db.
		Where("post_id IN ? AND user_id <> ? AND created_at > ?", postIDs, excludeUserID, since).
		Order("created_at DESC, id DESC").
		Find(&likes).Error
	return likes, err
}

// DeleteLikesByPostID removes every like edge on a post
func (r *PostgresLikeRepository) DeleteLikesByPostID(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error
}

// CreateCommentLike creates a like edge on a comment
func (r *PostgresLikeRepository) CreateCommentLike(like *models.CommentLike) error {
	return r.db.Create(like).Error
}

// DeleteCommentLike removes a like edge from a comment
func (r *PostgresLikeRepository) DeleteCommentLike(commentID, userID uint) error {
	res := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasCommentLike checks whether a user has liked a comment
func (r *PostgresLikeRepository) HasCommentLike(commentID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteLikesByCommentIDs removes the like edges on the given comments
func (r *PostgresLikeRepository) DeleteLikesByCommentIDs(commentIDs []uint) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error
}
