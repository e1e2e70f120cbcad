package repositories

import (
	"github.com/bloghive/backend/internal/models"
	"gorm.io/gorm"
)

// BlockRepository defines the interface for block edge operations
type BlockRepository interface {
	CreateBlock(block *models.Block) error
	DeleteBlock(blockerID, blockedID uint) error
	IsBlocking(blockerID, blockedID uint) (bool, error)
	GetBlockedUsers(userID uint) ([]models.User, error)
}

// PostgresBlockRepository implements BlockRepository for PostgreSQL
type PostgresBlockRepository struct {
	db *gorm.DB
}

// NewPostgresBlockRepository creates a new PostgresBlockRepository
func NewPostgresBlockRepository(db *gorm.DB) *PostgresBlockRepository {
	return &PostgresBlockRepository{db: db}
}

// CreateBlock creates a new block edge
func (r *PostgresBlockRepository) CreateBlock(block *models.Block) error {
	return r.db.Create(block).Error
}

// DeleteBlock removes a block edge; gorm.ErrRecordNotFound when absent
func (r *PostgresBlockRepository) DeleteBlock(blockerID, blockedID uint) error {
	res := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&models.Block{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsBlocking checks whether the block edge exists
func (r *PostgresBlockRepository) IsBlocking(blockerID, blockedID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetBlockedUsers retrieves the users blocked by userID
func (r *PostgresBlockRepository) GetBlockedUsers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("blocks").Select("blocked_id").Where("blocker_id = ?", userID),
	).Find(&users).Error
	return users, err
}
