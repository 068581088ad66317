package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

var ErrNoSuchRow = errors.New("no such task")

// Board is the list of tasks as last fetched, plus the row numbering of the
// last rendering so commands can refer to "task 3". It is safe for concurrent
// use.
type Board struct {
	mu    sync.Mutex
	tasks []*Task
	rows  []string // task ids in rendered order
}

// Replace swaps in a freshly fetched list.
func (b *Board) Replace(tasks []*Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append([]*Task(nil), tasks...)
}

// Upsert applies a task returned by a create or update call.
func (b *Board) Upsert(t *Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, cur := range b.tasks {
		if cur.ID == t.ID {
			b.tasks[i] = t
			return
		}
	}
	b.tasks = append(b.tasks, t)
}

// Remove drops a task after a successful delete.
func (b *Board) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, cur := range b.tasks {
		if cur.ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			return
		}
	}
}

// Clear forgets everything, e.g. on logout.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = nil
	b.rows = nil
}

// Sorted returns the tasks in display order and remembers that order for
// Resolve.
func (b *Board) Sorted() []*Task {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := append([]*Task(nil), b.tasks...)
	SortForDisplay(out)

	b.rows = make([]string, len(out))
	for i, t := range out {
		b.rows[i] = t.ID
	}
	return out
}

// Resolve maps a 1-based row number from the last rendering, or a task id,
// to the task.
func (b *Board) Resolve(ref string) (*Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ref = strings.TrimSpace(ref)
	id := ref
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(b.rows) {
			return nil, fmt.Errorf("%w: row %d", ErrNoSuchRow, n)
		}
		id = b.rows[n-1]
	}

	for _, t := range b.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSuchRow, ref)
}

// Summary counts completed tasks; percent is rounded to a whole number.
func (b *Board) Summary() (completed, total, percent int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	total = len(b.tasks)
	for _, t := range b.tasks {
		if t.Completed {
			completed++
		}
	}
	if total > 0 {
		percent = (completed*100 + total/2) / total
	}
	return completed, total, percent
}

// Draft holds the compose form between prompts.
type Draft struct {
	Text       string
	Deadline   *time.Time
	RepeatDays []string
}

// Reset clears the form after a successful create.
func (d *Draft) Reset() {
	*d = Draft{}
}
