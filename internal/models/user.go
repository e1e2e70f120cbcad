package models

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// User is an account plus its unread-activity watermarks. Each watermark
// records the last moment the user viewed that activity kind to the end;
// unread counters are recomputed against these on every read.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:120;uniqueIndex"`
	Name         string    `json:"name" gorm:"size:64"`
	Location     string    `json:"location" gorm:"size:64"`
	AboutMe      string    `json:"about_me"`
	PasswordHash string    `json:"-" gorm:"size:128"`
	FirebaseUID  string    `json:"firebase_uid,omitempty" gorm:"index"`
	RoleID       uint      `json:"role_id" gorm:"index"`
	LastSeen     time.Time `json:"last_seen"`

	LastReceivedCommentsRead time.Time `json:"last_received_comments_read"`
	LastMessagesRead         time.Time `json:"last_messages_read"`
	LastPostsLikesRead       time.Time `json:"last_posts_likes_read"`
	LastFollowsRead          time.Time `json:"last_follows_read"`
	LastFollowedsPostsRead   time.Time `json:"last_followeds_posts_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetPassword stores a bcrypt hash of the given password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the given password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// AvatarURL returns a gravatar identicon URL derived from the user's email.
func (u *User) AvatarURL(size int) string {
	digest := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=64"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type UpdateUserRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=2,max=64"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=64"`
	Location string `json:"location,omitempty" validate:"omitempty,max=64"`
	AboutMe  string `json:"about_me,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
