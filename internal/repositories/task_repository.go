package repositories

import (
	"github.com/bloghive/backend/internal/models"
	"gorm.io/gorm"
)

// TaskRepository defines the interface for background task records
type TaskRepository interface {
	CreateTask(task *models.Task) error
	GetTaskByID(id string) (*models.Task, error)
	GetTasksByUserID(userID uint) ([]models.Task, error)
	MarkComplete(id string) error
}

// PostgresTaskRepository implements TaskRepository for PostgreSQL
type PostgresTaskRepository struct {
	db *gorm.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository
func NewPostgresTaskRepository(db *gorm.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

// CreateTask creates a new task record
func (r *PostgresTaskRepository) CreateTask(task *models.Task) error {
	return r.db.Create(task).Error
}

// GetTaskByID retrieves a task by its UUID
func (r *PostgresTaskRepository) GetTaskByID(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTasksByUserID retrieves a user's tasks, newest first
func (r *PostgresTaskRepository) GetTasksByUserID(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

// MarkComplete flags a task as finished
func (r *PostgresTaskRepository) MarkComplete(id string) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Update("complete", true).Error
}
