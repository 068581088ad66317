package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Task is a single to-do item owned by exactly one user.
//
// Deadline is nil for tasks without one. RemindedAt is set once a deadline
// reminder has been delivered and cleared whenever the deadline moves.
type Task struct {
	ID         string
	UserID     string
	Text       string
	Completed  bool
	Deadline   *time.Time
	RepeatDays Weekdays
	RemindedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsRecurring reports whether the task acts as a recurrence template.
func (t *Task) IsRecurring() bool {
	return len(t.RepeatDays) > 0
}

// Weekdays is the recurrence day list, stored as a JSON array column.
type Weekdays []string

// Value implements driver.Valuer. A nil list is stored as [].
func (w Weekdays) Value() (driver.Value, error) {
	if w == nil {
		w = Weekdays{}
	}
	b, err := json.Marshal([]string(w))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb/text columns.
func (w *Weekdays) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*w = Weekdays{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("weekdays: unsupported type %T", src)
	}

	days := []string{}
	if err := json.Unmarshal(raw, &days); err != nil {
		return fmt.Errorf("weekdays: %w", err)
	}
	*w = days
	return nil
}

// Contains reports whether day is in the list.
func (w Weekdays) Contains(day string) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// TaskReminder is a task due soon, joined with its owner's address.
type TaskReminder struct {
	TaskID   string
	Text     string
	Deadline time.Time
	Email    string
}
