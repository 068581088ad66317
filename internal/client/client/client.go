package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
)

// CreateTask is the body of a create call.
type CreateTask struct {
	Text       string     `json:"text"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	RepeatDays []string   `json:"repeatDays,omitempty"`
}

// UpdateTask is a partial update. Nil fields are not sent; ClearDeadline
// sends an explicit null.
type UpdateTask struct {
	Text          *string
	Completed     *bool
	Deadline      *time.Time
	ClearDeadline bool
	RepeatDays    *[]string
}

type Client interface {
	SetToken(token string)
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Ping(ctx context.Context) error
	ListTasks(ctx context.Context) ([]*models.Task, error)
	CreateTask(ctx context.Context, in CreateTask) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, in UpdateTask) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	Performance(ctx context.Context) (*models.Performance, error)
}
