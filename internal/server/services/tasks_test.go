package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) (*TaskService, *fakeTasksRepo) {
	t.Helper()
	repo := newFakeTasksRepo()
	return NewTaskService(nil, &fakeRepoManager{t: repo}), repo
}

func ptr[T any](v T) *T { return &v }

func TestTaskService_CreateAndList(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	riga := time.FixedZone("EET", 2*60*60)
	deadline := time.Date(2024, 5, 1, 18, 0, 0, 0, riga)

	created, err := s.Create(ctx, "alice", CreateTaskInput{Text: "  pay rent ", Deadline: &deadline, RepeatDays: []string{"Friday", "monday"}})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "pay rent", created.Text)
	assert.False(t, created.Completed)
	assert.Equal(t, time.UTC, created.Deadline.Location())
	assert.True(t, created.Deadline.Equal(deadline))
	assert.Equal(t, models.Weekdays{"monday", "friday"}, created.RepeatDays)

	_, err = s.Create(ctx, "bob", CreateTaskInput{Text: "bob's task"})
	require.NoError(t, err)

	list, err := s.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestTaskService_CreateValidation(t *testing.T) {
	s, repo := newTaskService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "alice", CreateTaskInput{Text: "   "})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Create(ctx, "alice", CreateTaskInput{Text: "x", RepeatDays: []string{"funday"}})
	assert.ErrorIs(t, err, common.ErrorValidation)

	assert.Empty(t, repo.rows)
}

func TestTaskService_UpdatePartial(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "alice", CreateTaskInput{Text: "read"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, "alice", created.ID, UpdateTaskInput{Completed: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "read", updated.Text, "absent fields stay unchanged")

	updated, err = s.Update(ctx, "alice", created.ID, UpdateTaskInput{Text: ptr("read a book")})
	require.NoError(t, err)
	assert.Equal(t, "read a book", updated.Text)
	assert.True(t, updated.Completed)

	_, err = s.Update(ctx, "alice", created.ID, UpdateTaskInput{Text: ptr("")})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestTaskService_UpdateDeadlineRearmsReminder(t *testing.T) {
	s, repo := newTaskService(t)
	ctx := context.Background()

	d1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	created, err := s.Create(ctx, "alice", CreateTaskInput{Text: "call", Deadline: &d1})
	require.NoError(t, err)

	reminded := d1.Add(-time.Hour)
	repo.rows[0].RemindedAt = &reminded

	// same instant in another zone is not a move
	same := d1.In(time.FixedZone("X", 3600))
	got, err := s.Update(ctx, "alice", created.ID, UpdateTaskInput{DeadlineSet: true, Deadline: &same})
	require.NoError(t, err)
	assert.NotNil(t, got.RemindedAt)

	d2 := d1.Add(24 * time.Hour)
	got, err = s.Update(ctx, "alice", created.ID, UpdateTaskInput{DeadlineSet: true, Deadline: &d2})
	require.NoError(t, err)
	assert.Nil(t, got.RemindedAt)
	assert.True(t, got.Deadline.Equal(d2))

	got, err = s.Update(ctx, "alice", created.ID, UpdateTaskInput{DeadlineSet: true})
	require.NoError(t, err)
	assert.Nil(t, got.Deadline, "explicit null clears the deadline")
}

func TestTaskService_UpdateRepeatDays(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "alice", CreateTaskInput{Text: "gym", RepeatDays: []string{"monday"}})
	require.NoError(t, err)

	got, err := s.Update(ctx, "alice", created.ID, UpdateTaskInput{RepeatDaysSet: true, RepeatDays: nil})
	require.NoError(t, err)
	assert.Empty(t, got.RepeatDays)

	_, err = s.Update(ctx, "alice", created.ID, UpdateTaskInput{RepeatDaysSet: true, RepeatDays: []string{"mon"}})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestTaskService_CrossUserIsolation(t *testing.T) {
	s, repo := newTaskService(t)
	ctx := context.Background()

	alices, err := s.Create(ctx, "alice", CreateTaskInput{Text: "secret plan"})
	require.NoError(t, err)

	_, err = s.Update(ctx, "bob", alices.ID, UpdateTaskInput{Completed: ptr(true)})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, s.Delete(ctx, "bob", alices.ID), "foreign delete is a silent no-op")

	require.Len(t, repo.rows, 1)
	assert.False(t, repo.rows[0].Completed)
	assert.Equal(t, "secret plan", repo.rows[0].Text)
}

func TestTaskService_UpdateMalformedIDIsNotFound(t *testing.T) {
	s, _ := newTaskService(t)

	_, err := s.Update(context.Background(), "alice", "not-a-uuid", UpdateTaskInput{Completed: ptr(true)})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTaskService_DeleteIdempotent(t *testing.T) {
	s, repo := newTaskService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "alice", CreateTaskInput{Text: "x"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "alice", created.ID))
	require.NoError(t, s.Delete(ctx, "alice", created.ID))
	require.NoError(t, s.Delete(ctx, "alice", uuid.NewString()))
	assert.Empty(t, repo.rows)

	err = s.Delete(ctx, "alice", "nope")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestTaskService_StoreErrorsAreWrapped(t *testing.T) {
	s, repo := newTaskService(t)
	repo.err = errors.New("db down")
	ctx := context.Background()

	_, err := s.List(ctx, "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")

	_, err = s.Create(ctx, "alice", CreateTaskInput{Text: "x"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrorValidation))

	err = s.Delete(ctx, "alice", uuid.NewString())
	require.Error(t, err)
}
