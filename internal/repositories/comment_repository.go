package repositories

import (
	"github.com/bloghive/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Tree traversal (ancestors, descendants) is done by the service layer on
// top of GetCommentByID and GetChildren.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetChildren(parentID uint) ([]models.Comment, error)
	GetRootsByPostID(postID string, offset, limit int) ([]models.Comment, int64, error)
	GetCommentsByPostIDs(postIDs []string) ([]models.Comment, error)
	GetCommentsByUserID(userID uint) ([]models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteComments(ids []uint) error
	DeleteCommentsByPostID(postID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetChildren retrieves the direct children of a comment, oldest first
func (r *PostgresCommentRepository) GetChildren(parentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("parent_id = ?", parentID).Order("created_at, id").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetRootsByPostID retrieves a page of a post's root comments, newest first,
// plus the total root count
func (r *PostgresCommentRepository) GetRootsByPostID(postID string, offset, limit int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64
	base := r.db.Model(&models.Comment{}).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Session(&gorm.Session{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := base.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// GetCommentsByPostIDs retrieves every comment on any of the given posts
func (r *PostgresCommentRepository) GetCommentsByPostIDs(postIDs []string) ([]models.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var comments []models.Comment
	if err := r.db.Where("post_id IN ?", postIDs).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsByUserID retrieves every comment authored by a user
func (r *PostgresCommentRepository) GetCommentsByUserID(userID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("user_id = ?", userID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment updates an existing comment in PostgreSQL
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteComments deletes the given comments by ID
func (r *PostgresCommentRepository) DeleteComments(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Delete(&models.Comment{}, ids).Error
}

// DeleteCommentsByPostID deletes every comment on a post
func (r *PostgresCommentRepository) DeleteCommentsByPostID(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}
