package repositories

import (
	"github.com/bloghive/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for the notification ledger.
// Replace implements the last-value-wins slot: any prior notification with
// the same (user, name) is removed before the new one is inserted.
type NotificationRepository interface {
	Replace(notification *models.Notification) error
	GetNotificationByID(id uint) (*models.Notification, error)
	ListSince(userID uint, since float64) ([]models.Notification, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new NotificationRepository for PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// Replace deletes any notification with the same (user, name) and inserts
// the new one. Callers needing atomicity with other writes run this inside
// Store.Transaction; standalone calls get their own transaction here.
func (r *postgresNotificationRepository) Replace(notification *models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND name = ?", notification.UserID, notification.Name).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Create(notification).Error
	})
}

// GetNotificationByID retrieves a single notification
func (r *postgresNotificationRepository) GetNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListSince retrieves a user's notifications newer than the given float
// timestamp, ascending
func (r *postgresNotificationRepository) ListSince(userID uint, since float64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("user_id = ? AND timestamp > ?", userID, since).
		Order("timestamp").
		Find(&notifications).Error
	return notifications, err
}
