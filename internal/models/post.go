package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a blog post stored in MongoDB. Comments and likes live in
// PostgreSQL and reference the post by its hex ObjectID.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Title     string             `json:"title" bson:"title"`
	Summary   string             `json:"summary,omitempty" bson:"summary,omitempty"`
	Body      string             `json:"body" bson:"body"`
	Views     int64              `json:"views" bson:"views"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Summary string `json:"summary,omitempty" validate:"omitempty,max=1000"`
	Body    string `json:"body" validate:"required,min=1"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title   string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Summary string `json:"summary,omitempty" validate:"omitempty,max=1000"`
	Body    string `json:"body,omitempty" validate:"omitempty,min=1"`
}
