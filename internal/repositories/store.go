package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the PostgreSQL repositories behind one handle so service
// code can run a group of mutations inside a single transaction. The store
// passed to a Transaction callback is bound to that transaction; a rollback
// undoes every repository write made through it.
type Store interface {
	Users() UserRepository
	Comments() CommentRepository
	Messages() MessageRepository
	Notifications() NotificationRepository
	Follows() FollowRepository
	Blocks() BlockRepository
	Likes() LikeRepository
	Tasks() TaskRepository
	Roles() RoleRepository
	Transaction(ctx context.Context, fn func(Store) error) error
}

// GormStore implements Store on top of a *gorm.DB
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository                 { return NewPostgresUserRepository(s.db) }
func (s *GormStore) Comments() CommentRepository           { return NewPostgresCommentRepository(s.db) }
func (s *GormStore) Messages() MessageRepository           { return NewPostgresMessageRepository(s.db) }
func (s *GormStore) Notifications() NotificationRepository { return NewPostgresNotificationRepository(s.db) }
func (s *GormStore) Follows() FollowRepository             { return NewPostgresFollowRepository(s.db) }
func (s *GormStore) Blocks() BlockRepository               { return NewPostgresBlockRepository(s.db) }
func (s *GormStore) Likes() LikeRepository                 { return NewPostgresLikeRepository(s.db) }
func (s *GormStore) Tasks() TaskRepository                 { return NewPostgresTaskRepository(s.db) }
func (s *GormStore) Roles() RoleRepository                 { return NewPostgresRoleRepository(s.db) }

// Transaction runs fn against a store bound to one database transaction.
func (s *GormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}
