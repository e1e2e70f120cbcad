package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/pkg/email"
	"github.com/google/uuid"
)

// TaskRunner dispatches a bulk operation for execution. Queueing and worker
// topology belong to the runner; the service only hands it a task id and a
// function to run.
type TaskRunner interface {
	Run(taskID string, fn func(ctx context.Context) error)
}

// GoroutineTaskRunner runs each task in its own goroutine.
type GoroutineTaskRunner struct{}

// Run executes fn asynchronously, logging a failure instead of surfacing it;
// a bulk task has no caller left to return an error to.
func (GoroutineTaskRunner) Run(taskID string, fn func(ctx context.Context) error) {
	go func() {
		if err := fn(context.Background()); err != nil {
			log.Printf("bulk task %s failed: %v", taskID, err)
		}
	}()
}

// TaskService owns background bulk operations: durable task rows, live
// progress in Redis, task_progress notifications to the owner, and the
// message broadcast itself. Tasks are not cancellable once dispatched.
type TaskService struct {
	store    repositories.Store
	posts    repositories.PostRepository
	progress repositories.ProgressStore
	mailer   email.Mailer
	runner   TaskRunner
}

// NewTaskService creates a new TaskService
func NewTaskService(store repositories.Store, posts repositories.PostRepository, progress repositories.ProgressStore, mailer email.Mailer, runner TaskRunner) *TaskService {
	return &TaskService{store: store, posts: posts, progress: progress, mailer: mailer, runner: runner}
}

// RunBulkOperation dispatches fn under the given task id.
func (s *TaskService) RunBulkOperation(taskID string, fn func(ctx context.Context) error) {
	s.runner.Run(taskID, fn)
}

// ReportProgress records the task's completion percentage, pushes a
// task_progress notification to the owner, and marks the task complete at 100.
func (s *TaskService) ReportProgress(ctx context.Context, taskID string, percent int) error {
	if err := s.progress.SetProgress(ctx, taskID, percent); err != nil {
		return err
	}
	task, err := s.store.Tasks().GetTaskByID(taskID)
	if err != nil {
		return asNotFound(err, "task %s", taskID)
	}
	owner, err := s.store.Users().GetUserByID(task.UserID)
	if err != nil {
		return asNotFound(err, "user %d", task.UserID)
	}
	notifications := NewNotificationService(s.store, s.posts)
	_, err = notifications.Push(owner.ID, models.NotifTaskProgress, map[string]any{
		"task_id":     taskID,
		"description": task.Description,
		"progress":    percent,
	})
	if err != nil {
		return err
	}
	if percent >= 100 {
		return s.MarkComplete(taskID)
	}
	return nil
}

// MarkComplete flags the durable task row as finished.
func (s *TaskService) MarkComplete(taskID string) error {
	return s.store.Tasks().MarkComplete(taskID)
}

// ListTasks returns the caller's bulk tasks, newest first.
func (s *TaskService) ListTasks(actor *models.User) ([]models.Task, error) {
	return s.store.Tasks().GetTasksByUserID(actor.ID)
}

// GetTaskStatus returns the task row and its live progress; owner only.
func (s *TaskService) GetTaskStatus(ctx context.Context, actor *models.User, taskID string) (*models.Task, int, error) {
	task, err := s.store.Tasks().GetTaskByID(taskID)
	if err != nil {
		return nil, 0, asNotFound(err, "task %s", taskID)
	}
	if task.UserID != actor.ID {
		return nil, 0, forbiddenf("task %s does not belong to user %d", taskID, actor.ID)
	}
	percent, err := s.progress.GetProgress(ctx, taskID)
	if err != nil {
		return nil, 0, err
	}
	return task, percent, nil
}

// LaunchBroadcast creates a broadcast task for the sender and dispatches it.
// The task sends one copy of body to every other user, pushing each
// recipient's unread counter and mailing them, reporting progress as it goes.
func (s *TaskService) LaunchBroadcast(ctx context.Context, sender *models.User, body string) (*models.Task, error) {
	task := &models.Task{
		ID:          uuid.NewString(),
		Name:        "message_broadcast",
		Description: fmt.Sprintf("Broadcasting a message from %s", sender.Username),
		UserID:      sender.ID,
	}
	if err := s.store.Tasks().CreateTask(task); err != nil {
		return nil, err
	}
	s.RunBulkOperation(task.ID, func(taskCtx context.Context) error {
		return s.broadcast(taskCtx, task.ID, sender.ID, body)
	})
	return task, nil
}

func (s *TaskService) broadcast(ctx context.Context, taskID string, senderID uint, body string) error {
	if err := s.ReportProgress(ctx, taskID, 0); err != nil {
		return err
	}
	recipientIDs, err := s.store.Users().GetUserIDsExcept(senderID)
	if err != nil {
		return err
	}
	if len(recipientIDs) == 0 {
		return s.ReportProgress(ctx, taskID, 100)
	}

	for i, recipientID := range recipientIDs {
		recipient, err := s.store.Users().GetUserByID(recipientID)
		if err != nil {
			return asNotFound(err, "user %d", recipientID)
		}
		message := &models.Message{
			SenderID:    senderID,
			RecipientID: recipientID,
			Body:        body,
			CreatedAt:   time.Now(),
		}
		err = s.store.Transaction(ctx, func(tx repositories.Store) error {
			if err := tx.Messages().CreateMessage(message); err != nil {
				return err
			}
			return NewNotificationService(tx, s.posts).PushReceivedMessages(recipient)
		})
		if err != nil {
			return err
		}
		if err := s.mailer.Send(recipient.Email, "You have a new message",
			fmt.Sprintf("Dear %s,\n\n%s", recipient.Username, body), ""); err != nil {
			log.Printf("broadcast %s: mail to user %d failed: %v", taskID, recipientID, err)
		}
		if err := s.ReportProgress(ctx, taskID, 100*(i+1)/len(recipientIDs)); err != nil {
			return err
		}
	}

	// Confirmation back to the sender once every copy is out.
	sender, err := s.store.Users().GetUserByID(senderID)
	if err != nil {
		return asNotFound(err, "user %d", senderID)
	}
	confirmation := &models.Message{
		SenderID:    senderID,
		RecipientID: senderID,
		Body:        fmt.Sprintf("Broadcast finished, %d recipients. Original message:\n\n%s", len(recipientIDs), body),
		CreatedAt:   time.Now(),
	}
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Messages().CreateMessage(confirmation); err != nil {
			return err
		}
		return NewNotificationService(tx, s.posts).PushReceivedMessages(sender)
	})
}
