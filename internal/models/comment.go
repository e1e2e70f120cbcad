package models

import (
	"time"
)

// Comment is a node in a post's comment tree. ParentID is nil for root
// comments; a child always belongs to the same post as its parent.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"size:24;index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsRoot reports whether the comment starts a thread.
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID   string `json:"post_id" validate:"required,len=24"`
	Body     string `json:"body" validate:"required,min=1,max=2000"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// CommentWithDescendants is the wire shape for a root comment and its
// subtree flattened in timestamp order.
type CommentWithDescendants struct {
	Comment
	Descendants []Comment `json:"descendants"`
}
