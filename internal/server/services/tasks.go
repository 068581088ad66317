package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/weekday"
	"github.com/google/uuid"
)

// CreateTaskInput is a validated-at-the-edge create request.
type CreateTaskInput struct {
	Text       string
	Deadline   *time.Time
	RepeatDays []string
}

// UpdateTaskInput is a partial update. Nil pointers and unset flags leave the
// field unchanged; DeadlineSet with a nil Deadline clears it.
type UpdateTaskInput struct {
	Text          *string
	Completed     *bool
	DeadlineSet   bool
	Deadline      *time.Time
	RepeatDaysSet bool
	RepeatDays    []string
}

// TaskService implements the per-user task operations. Every call is scoped
// to the authenticated user id.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// List returns all of userID's tasks.
func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	tasks, err := s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

// Create validates in and stores a new incomplete task for userID.
func (s *TaskService) Create(ctx context.Context, userID string, in CreateTaskInput) (*models.Task, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("text required: %w", common.ErrorValidation)
	}

	days, err := weekday.Normalize(in.RepeatDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	task := &models.Task{
		UserID:     userID,
		Text:       text,
		Deadline:   utcPtr(in.Deadline),
		RepeatDays: days,
	}

	created, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// Update applies in to the task identified by (userID, taskID). A malformed,
// missing or foreign id is common.ErrorNotFound. Moving or clearing the
// deadline re-arms the reminder.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, in UpdateTaskInput) (*models.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, common.ErrorNotFound
	}

	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}

	if in.Text != nil {
		text := strings.TrimSpace(*in.Text)
		if text == "" {
			return nil, fmt.Errorf("text must not be empty: %w", common.ErrorValidation)
		}
		task.Text = text
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}
	if in.DeadlineSet {
		next := utcPtr(in.Deadline)
		if !sameInstant(task.Deadline, next) {
			task.RemindedAt = nil
		}
		task.Deadline = next
	}
	if in.RepeatDaysSet {
		days, err := weekday.Normalize(in.RepeatDays)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
		}
		task.RepeatDays = days
	}

	updated, err := repo.Update(ctx, task)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	return updated, nil
}

// Delete removes the task if userID owns it. Deleting a missing or foreign
// task succeeds without touching anything; a malformed id is a validation
// error.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return fmt.Errorf("invalid task id: %w", common.ErrorValidation)
	}
	if _, err := s.repomanager.Tasks(s.db).Delete(ctx, userID, taskID); err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
