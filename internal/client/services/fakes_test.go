package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/client/client"
	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/client/repositories/session"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	token string

	registerErr error
	loginToken  string
	loginErr    error
	pingErr     error

	tasks   []*models.Task
	listErr error

	created   *client.CreateTask
	createErr error

	updatedID string
	updated   *client.UpdateTask
	updateRet *models.Task
	updateErr error

	deletedID string
	deleteErr error

	perf    *models.Performance
	perfErr error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Register(ctx context.Context, email, password string) error {
	return f.registerErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeClient) ListTasks(ctx context.Context) ([]*models.Task, error) {
	return f.tasks, f.listErr
}

func (f *fakeClient) CreateTask(ctx context.Context, in client.CreateTask) (*models.Task, error) {
	f.created = &in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Task{ID: "new", Text: in.Text, Deadline: in.Deadline, RepeatDays: in.RepeatDays}, nil
}

func (f *fakeClient) UpdateTask(ctx context.Context, id string, in client.UpdateTask) (*models.Task, error) {
	f.updatedID = id
	f.updated = &in
	return f.updateRet, f.updateErr
}

func (f *fakeClient) DeleteTask(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

func (f *fakeClient) Performance(ctx context.Context) (*models.Performance, error) {
	return f.perf, f.perfErr
}

func newSessionRepo(t *testing.T) (*session.SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewSQLiteRepository(db), db
}
