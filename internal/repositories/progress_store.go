package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProgressStore keeps the live progress of background tasks. Progress is
// ephemeral (the durable Task row only records completion), so entries
// expire on their own once a task has been idle for a day.
type ProgressStore interface {
	SetProgress(ctx context.Context, taskID string, percent int) error
	GetProgress(ctx context.Context, taskID string) (int, error)
}

const progressTTL = 24 * time.Hour

// RedisProgressStore implements ProgressStore on Redis hashes
type RedisProgressStore struct {
	client *redis.Client
}

// NewRedisProgressStore creates a new RedisProgressStore
func NewRedisProgressStore(client *redis.Client) *RedisProgressStore {
	return &RedisProgressStore{client: client}
}

func taskKey(taskID string) string {
	return "task:" + taskID
}

// SetProgress records the task's completion percentage
func (s *RedisProgressStore) SetProgress(ctx context.Context, taskID string, percent int) error {
	key := taskKey(taskID)
	if err := s.client.HSet(ctx, key, "progress", percent).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, progressTTL).Err()
}

// GetProgress reads the task's completion percentage; 0 when unknown
func (s *RedisProgressStore) GetProgress(ctx context.Context, taskID string) (int, error) {
	percent, err := s.client.HGet(ctx, taskKey(taskID), "progress").Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return percent, nil
}
