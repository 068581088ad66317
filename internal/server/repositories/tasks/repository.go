package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// Repository persists tasks. Every user-facing method is scoped by owner:
// a row belonging to someone else behaves exactly like a missing row.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	GetByID(ctx context.Context, userID, taskID string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID string) (bool, error)

	// scheduler queries
	FindDueForReminder(ctx context.Context, from, to time.Time) ([]models.TaskReminder, error)
	MarkReminded(ctx context.Context, taskID string, deadline, at time.Time) error
	FindRecurring(ctx context.Context, day string) ([]*models.Task, error)
	ExistsCreatedBetween(ctx context.Context, userID, text string, from, to time.Time) (bool, error)
}
