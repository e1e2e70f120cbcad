package repositories

import (
	"time"

	"github.com/bloghive/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for private message operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetMessageByID(id uint) (*models.Message, error)
	GetBetween(userA, userB uint) ([]models.Message, error)
	GetReceived(userID uint, offset, limit int) ([]models.Message, int64, error)
	GetInvolving(userID uint) ([]models.Message, error)
	CountReceivedSince(userID uint, since time.Time) (int64, error)
	UpdateMessage(message *models.Message) error
	DeleteMessage(id uint) error
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage creates a new message in PostgreSQL
func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetMessageByID retrieves a message by ID from PostgreSQL
func (r *PostgresMessageRepository) GetMessageByID(id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// GetBetween retrieves the messages exchanged between two users in either
// direction, ascending by timestamp
func (r *PostgresMessageRepository) GetBetween(userA, userB uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("created_at, id").
		Find(&messages).Error
	return messages, err
}

// GetReceived retrieves a page of a user's received messages, newest first,
// plus the total count
func (r *PostgresMessageRepository) GetReceived(userID uint, offset, limit int) ([]models.Message, int64, error) {
	var messages []models.Message
	var total int64
	base := r.db.Model(&models.Message{}).
		Where("recipient_id = ?", userID).
		Session(&gorm.Session{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := base.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// GetInvolving retrieves every message a user sent or received, ascending
func (r *PostgresMessageRepository) GetInvolving(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at, id").
		Find(&messages).Error
	return messages, err
}

// CountReceivedSince counts a user's received messages newer than the watermark
func (r *PostgresMessageRepository) CountReceivedSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND created_at > ?", userID, since).
		Count(&count).Error
	return count, err
}

// UpdateMessage updates an existing message in PostgreSQL
func (r *PostgresMessageRepository) UpdateMessage(message *models.Message) error {
	return r.db.Save(message).Error
}

// DeleteMessage deletes a message by ID from PostgreSQL
func (r *PostgresMessageRepository) DeleteMessage(id uint) error {
	return r.db.Delete(&models.Message{}, id).Error
}
