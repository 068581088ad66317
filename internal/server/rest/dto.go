package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,max=254"`
	Password string `json:"password" binding:"required,max=72"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type createTaskRequest struct {
	Text       string       `json:"text" binding:"required,max=1000"`
	Deadline   optionalTime `json:"deadline"`
	RepeatDays []string     `json:"repeatDays" binding:"omitempty,dive,weekday"`
}

type updateTaskRequest struct {
	Text       *string      `json:"text" binding:"omitempty,max=1000"`
	Completed  *bool        `json:"completed"`
	Deadline   optionalTime `json:"deadline"`
	RepeatDays *[]string    `json:"repeatDays" binding:"omitempty,dive,weekday"`
}

// optionalTime is a deadline field that remembers whether it was present in
// the body. It accepts an RFC3339 string, epoch milliseconds or null.
type optionalTime struct {
	Set   bool
	Value *time.Time
}

func (o *optionalTime) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.Value = nil

	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("deadline: %w", err)
		}
		o.Value = &t
		return nil
	default:
		var ms int64
		if err := json.Unmarshal(b, &ms); err != nil {
			return fmt.Errorf("deadline: expected RFC3339 string or epoch milliseconds")
		}
		t := time.UnixMilli(ms).UTC()
		o.Value = &t
		return nil
	}
}

type taskResponse struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Completed  bool       `json:"completed"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	UserID     string     `json:"userId"`
	RepeatDays []string   `json:"repeatDays"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func newTaskResponse(t *models.Task) taskResponse {
	r := taskResponse{
		ID:         t.ID,
		Text:       t.Text,
		Completed:  t.Completed,
		UserID:     t.UserID,
		RepeatDays: append([]string{}, t.RepeatDays...),
		CreatedAt:  t.CreatedAt.UTC(),
		UpdatedAt:  t.UpdatedAt.UTC(),
	}
	if t.Deadline != nil {
		d := t.Deadline.UTC()
		r.Deadline = &d
	}
	return r
}

func newTaskListResponse(tasks []*models.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t))
	}
	return out
}
