package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
	"github.com/google/uuid"
)

type fakeUsersRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*models.User
	getErr    error
	createErr error
	created   int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	f.created++
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

// fakeTasksRepo keeps tasks in memory with the same owner scoping as the
// Postgres repository.
type fakeTasksRepo struct {
	mu    sync.Mutex
	rows  []*models.Task
	clock func() time.Time
	err   error
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{clock: time.Now}
}

func (f *fakeTasksRepo) copyOf(t *models.Task) *models.Task {
	c := *t
	c.RepeatDays = append(models.Weekdays{}, t.RepeatDays...)
	return &c
}

func (f *fakeTasksRepo) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Task, 0)
	for _, t := range f.rows {
		if t.UserID == userID {
			out = append(out, f.copyOf(t))
		}
	}
	return out, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, userID, taskID string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.rows {
		if t.ID == taskID && t.UserID == userID {
			return f.copyOf(t), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	task.ID = uuid.NewString()
	task.CreatedAt = f.clock()
	task.UpdatedAt = task.CreatedAt
	if task.RepeatDays == nil {
		task.RepeatDays = models.Weekdays{}
	}
	f.rows = append(f.rows, f.copyOf(task))
	return task, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i, t := range f.rows {
		if t.ID == task.ID && t.UserID == task.UserID {
			task.UpdatedAt = f.clock()
			f.rows[i] = f.copyOf(task)
			return task, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeTasksRepo) Delete(ctx context.Context, userID, taskID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for i, t := range f.rows {
		if t.ID == taskID && t.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTasksRepo) FindDueForReminder(ctx context.Context, from, to time.Time) ([]models.TaskReminder, error) {
	return nil, fmt.Errorf("not used")
}

func (f *fakeTasksRepo) MarkReminded(ctx context.Context, taskID string, deadline, at time.Time) error {
	return fmt.Errorf("not used")
}

func (f *fakeTasksRepo) FindRecurring(ctx context.Context, day string) ([]*models.Task, error) {
	return nil, fmt.Errorf("not used")
}

func (f *fakeTasksRepo) ExistsCreatedBetween(ctx context.Context, userID, text string, from, to time.Time) (bool, error) {
	return false, fmt.Errorf("not used")
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository          { return m.u }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasks.Repository          { return m.t }
