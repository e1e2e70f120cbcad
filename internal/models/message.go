package models

import "time"

// Message is a private message between two users. There is no stored read
// flag; read state is derived by comparing CreatedAt to the recipient's
// LastMessagesRead watermark.
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateMessageRequest defines the request body for sending a private message
type CreateMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Body        string `json:"body" validate:"required,min=1,max=5000"`
}

// UpdateMessageRequest defines the request body for editing a sent message
type UpdateMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

// Conversation is one inbox row: the latest message exchanged with a
// counterpart, flagged new when it is beyond the viewer's watermark.
type Conversation struct {
	Counterpart User    `json:"counterpart"`
	LastMessage Message `json:"last_message"`
	IsNew       bool    `json:"is_new"`
}

// BroadcastRequest defines the request body for a bulk message broadcast
type BroadcastRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}
