// Package tasks provides the PostgreSQL-backed task repository used by the
// task API and the scheduler.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

const taskColumns = `id, user_id, text, completed, deadline, repeat_days, reminded_at, created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t          models.Task
		deadline   sql.NullTime
		remindedAt sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &deadline, &t.RepeatDays,
		&remindedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Deadline = timePtr(deadline)
	t.RemindedAt = timePtr(remindedAt)
	return &t, nil
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	v := nt.Time.UTC()
	return &v
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func (r *PostgresRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

// ListByUser returns all of userID's tasks, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = $1
		ORDER BY created_at, id`
	return r.queryTasks(ctx, query, userID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, taskID string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE id = $1 AND user_id = $2`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// Create inserts task and fills in id and timestamps assigned by the store.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (user_id, text, completed, deadline, repeat_days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Text, task.Completed, nullTime(task.Deadline), task.RepeatDays,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if task.RepeatDays == nil {
		task.RepeatDays = models.Weekdays{}
	}
	return task, nil
}

// Update writes the mutable fields of task, scoped by (ID, UserID), and
// refreshes updated_at. No matching row yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		UPDATE tasks
		SET text = $1, completed = $2, deadline = $3, repeat_days = $4, reminded_at = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.Text, task.Completed, nullTime(task.Deadline), task.RepeatDays, nullTime(task.RemindedAt),
		task.ID, task.UserID,
	).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// Delete removes the task if userID owns it and reports whether a row went away.
func (r *PostgresRepository) Delete(ctx context.Context, userID, taskID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

// FindDueForReminder returns incomplete, not yet reminded tasks whose deadline
// falls in [from, to], with the owner's email.
func (r *PostgresRepository) FindDueForReminder(ctx context.Context, from, to time.Time) ([]models.TaskReminder, error) {
	query := `
		SELECT t.id, t.text, t.deadline, u.email
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.completed = false
		  AND t.reminded_at IS NULL
		  AND t.deadline >= $1 AND t.deadline <= $2
		ORDER BY t.deadline`

	rows, err := r.db.QueryContext(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.TaskReminder
	for rows.Next() {
		var item models.TaskReminder
		if err := rows.Scan(&item.TaskID, &item.Text, &item.Deadline, &item.Email); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		item.Deadline = item.Deadline.UTC()
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

// MarkReminded records a delivered reminder for deadline. A task whose
// deadline has moved since is left unmarked. updated_at is not touched, the
// statistics use it as the completion time.
func (r *PostgresRepository) MarkReminded(ctx context.Context, taskID string, deadline, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET reminded_at = $1 WHERE id = $2 AND deadline = $3`,
		at.UTC(), taskID, deadline.UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindRecurring returns every task whose repeat_days contains day.
func (r *PostgresRepository) FindRecurring(ctx context.Context, day string) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE repeat_days @> jsonb_build_array($1::text)
		ORDER BY created_at, id`
	return r.queryTasks(ctx, query, day)
}

// ExistsCreatedBetween reports whether userID has a task with exactly text
// created in [from, to).
func (r *PostgresRepository) ExistsCreatedBetween(ctx context.Context, userID, text string, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tasks
			WHERE user_id = $1 AND text = $2 AND created_at >= $3 AND created_at < $4
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, text, from.UTC(), to.UTC()).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
