package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/client/client"
	"github.com/dmitrijs2005/tasktracker/internal/client/models"
)

// TaskService performs task calls and applies their results to the board.
// A failed call leaves the board as it was.
type TaskService interface {
	Refresh(ctx context.Context) ([]*models.Task, error)
	Create(ctx context.Context, d models.Draft) (*models.Task, error)
	Toggle(ctx context.Context, ref string) (*models.Task, error)
	Edit(ctx context.Context, ref string, in client.UpdateTask) (*models.Task, error)
	Delete(ctx context.Context, ref string) (*models.Task, error)
	Stats(ctx context.Context) (*models.Performance, error)
	Board() *models.Board
}

type taskService struct {
	client client.Client
	auth   AuthService
	board  *models.Board
}

func NewTaskService(c client.Client, auth AuthService, board *models.Board) TaskService {
	if board == nil {
		board = &models.Board{}
	}
	return &taskService{client: c, auth: auth, board: board}
}

func (s *taskService) Board() *models.Board {
	return s.board
}

func (s *taskService) Refresh(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		return nil, s.failed(ctx, err)
	}
	s.board.Replace(tasks)
	return s.board.Sorted(), nil
}

func (s *taskService) Create(ctx context.Context, d models.Draft) (*models.Task, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", client.ErrValidation)
	}

	t, err := s.client.CreateTask(ctx, client.CreateTask{
		Text:       text,
		Deadline:   d.Deadline,
		RepeatDays: d.RepeatDays,
	})
	if err != nil {
		return nil, s.failed(ctx, err)
	}
	s.board.Upsert(t)
	return t, nil
}

// Toggle flips the completion flag of the referenced task.
func (s *taskService) Toggle(ctx context.Context, ref string) (*models.Task, error) {
	cur, err := s.board.Resolve(ref)
	if err != nil {
		return nil, err
	}
	done := !cur.Completed
	return s.update(ctx, cur.ID, client.UpdateTask{Completed: &done})
}

func (s *taskService) Edit(ctx context.Context, ref string, in client.UpdateTask) (*models.Task, error) {
	cur, err := s.board.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if in.Text != nil && strings.TrimSpace(*in.Text) == "" {
		return nil, fmt.Errorf("%w: text cannot be empty", client.ErrValidation)
	}
	return s.update(ctx, cur.ID, in)
}

func (s *taskService) update(ctx context.Context, id string, in client.UpdateTask) (*models.Task, error) {
	t, err := s.client.UpdateTask(ctx, id, in)
	if err != nil {
		return nil, s.failed(ctx, err)
	}
	s.board.Upsert(t)
	return t, nil
}

// Delete removes the task on the server and then from the board.
func (s *taskService) Delete(ctx context.Context, ref string) (*models.Task, error) {
	cur, err := s.board.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if err := s.client.DeleteTask(ctx, cur.ID); err != nil {
		return nil, s.failed(ctx, err)
	}
	s.board.Remove(cur.ID)
	return cur, nil
}

func (s *taskService) Stats(ctx context.Context) (*models.Performance, error) {
	p, err := s.client.Performance(ctx)
	if err != nil {
		return nil, s.failed(ctx, err)
	}
	return p, nil
}

// failed ends the session on a rejected credential. The board is otherwise
// left as it was.
func (s *taskService) failed(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		s.board.Clear()
	}
	return dropOnUnauthorized(ctx, s.auth, err)
}
