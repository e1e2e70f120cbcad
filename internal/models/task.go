package models

import "time"

// Task records a background bulk operation. The durable row only tracks
// identity and completion; live progress lives in Redis and reaches the
// owner through task_progress notifications.
type Task struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"size:64"`
	Description string    `json:"description" gorm:"size:255"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Complete    bool      `json:"complete" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
