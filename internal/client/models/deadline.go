package models

import (
	"fmt"
	"strings"
	"time"
)

// DeadlineLayout is the format users type deadlines in.
const DeadlineLayout = "2006-01-02 15:04"

var inputLayouts = []string{
	DeadlineLayout,
	"2006-01-02T15:04", // what an HTML datetime-local field produces
	"2006-01-02",
}

// ParseDeadline reads a deadline typed in loc and returns it in UTC. An empty
// string means no deadline. A bare date means the end of that day.
func ParseDeadline(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		u := t.UTC()
		return &u, nil
	}

	for _, layout := range inputLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = t.AddDate(0, 0, 1).Add(-time.Minute)
		}
		u := t.UTC()
		return &u, nil
	}

	return nil, fmt.Errorf("unrecognized deadline %q, use %q", s, DeadlineLayout)
}
