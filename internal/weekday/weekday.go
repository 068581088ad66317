// Package weekday handles the lowercase English day names used for task
// recurrence ("monday" ... "sunday").
package weekday

import (
	"fmt"
	"strings"
	"time"
)

// Names lists the valid day names in week order starting from Monday.
var Names = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var index = func() map[string]int {
	m := make(map[string]int, len(Names))
	for i, n := range Names {
		m[n] = i
	}
	return m
}()

// IsValid reports whether name is a recurrence day name. Matching is
// case-insensitive.
func IsValid(name string) bool {
	_, ok := index[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Of returns the day name of t in t's own location.
func Of(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// Normalize lowercases days, drops duplicates and orders them Monday first.
// An unknown name is an error. A nil or empty input yields an empty, non-nil
// slice.
func Normalize(days []string) ([]string, error) {
	seen := make([]bool, len(Names))
	for _, d := range days {
		i, ok := index[strings.ToLower(strings.TrimSpace(d))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", d)
		}
		seen[i] = true
	}

	out := make([]string, 0, len(days))
	for i, s := range seen {
		if s {
			out = append(out, Names[i])
		}
	}
	return out, nil
}

// Abbrev returns the three-letter form ("mon") shown in compact listings.
func Abbrev(name string) string {
	name = strings.ToLower(name)
	if len(name) < 3 {
		return name
	}
	return name[:3]
}
