// Package models holds the CLI's view of the task list: tasks as returned by
// the server, their display priority and ordering, the board of last fetched
// tasks and the compose form.
package models

import (
	"sort"
	"time"
)

// Task mirrors the server's JSON task record.
type Task struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Completed  bool       `json:"completed"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	UserID     string     `json:"userId"`
	RepeatDays []string   `json:"repeatDays"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Performance mirrors the statistics endpoint.
type Performance struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	CompletionRate  float64 `json:"completionRate"`
	Overdue         int     `json:"overdue"`
	CompletedOnTime int     `json:"completedOnTime"`
	CompletedLate   int     `json:"completedLate"`
}

type Priority int

const (
	PriorityOverdue Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
	PriorityNone
)

func (p Priority) String() string {
	switch p {
	case PriorityOverdue:
		return "Overdue"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "No deadline"
	}
}

const (
	highWithin   = 6 * time.Hour
	mediumWithin = 12 * time.Hour
)

// HoursLeft returns the time until the deadline in hours, negative once it
// has passed. ok is false for a task without a deadline.
func (t *Task) HoursLeft(now time.Time) (hours float64, ok bool) {
	if t.Deadline == nil {
		return 0, false
	}
	return t.Deadline.Sub(now).Hours(), true
}

// Classify buckets a task by how soon its deadline is. Completion does not
// matter here.
func Classify(t *Task, now time.Time) Priority {
	if t.Deadline == nil {
		return PriorityNone
	}
	left := t.Deadline.Sub(now)
	switch {
	case left < 0:
		return PriorityOverdue
	case left <= highWithin:
		return PriorityHigh
	case left <= mediumWithin:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// SortForDisplay orders tasks in place: incomplete before completed, then by
// ascending deadline with undated tasks last. Equal keys keep their order.
func SortForDisplay(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		switch {
		case a.Deadline == nil:
			return false
		case b.Deadline == nil:
			return true
		default:
			return a.Deadline.Before(*b.Deadline)
		}
	})
}
