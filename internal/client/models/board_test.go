package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_UpsertRemoveReplace(t *testing.T) {
	var b Board
	b.Replace([]*Task{{ID: "1", Text: "a"}, {ID: "2", Text: "b"}})

	b.Upsert(&Task{ID: "2", Text: "b2", Completed: true})
	b.Upsert(&Task{ID: "3", Text: "c"})
	b.Remove("1")
	b.Remove("missing")

	sorted := b.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, []string{"3", "2"}, ids(sorted))
	assert.Equal(t, "b2", sorted[1].Text)

	b.Clear()
	assert.Empty(t, b.Sorted())
}

func TestBoard_Resolve(t *testing.T) {
	var b Board
	b.Replace([]*Task{
		{ID: "done", Completed: true},
		{ID: "open"},
	})

	_, err := b.Resolve("1")
	require.ErrorIs(t, err, ErrNoSuchRow, "rows exist only after a rendering")

	b.Sorted()

	got, err := b.Resolve("1")
	require.NoError(t, err)
	assert.Equal(t, "open", got.ID)

	got, err = b.Resolve(" done ")
	require.NoError(t, err)
	assert.Equal(t, "done", got.ID)

	for _, ref := range []string{"0", "3", "nope"} {
		_, err := b.Resolve(ref)
		assert.ErrorIs(t, err, ErrNoSuchRow, ref)
	}
}

func TestBoard_Summary(t *testing.T) {
	var b Board
	c, total, p := b.Summary()
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{c, total, p})

	b.Replace([]*Task{{ID: "1", Completed: true}, {ID: "2"}, {ID: "3"}})
	c, total, p = b.Summary()
	assert.Equal(t, [3]int{1, 3, 33}, [3]int{c, total, p})

	b.Upsert(&Task{ID: "2", Completed: true})
	_, _, p = b.Summary()
	assert.Equal(t, 67, p)
}

func TestDraft_Reset(t *testing.T) {
	d := time.Now()
	draft := Draft{Text: "x", Deadline: &d, RepeatDays: []string{"monday"}}
	draft.Reset()
	assert.Equal(t, Draft{}, draft)
}

func TestParseDeadline(t *testing.T) {
	riga := time.FixedZone("EET", 2*60*60)

	tests := []struct {
		in      string
		want    *time.Time
		wantErr bool
	}{
		{"", nil, false},
		{"2024-03-11 20:00", ptr(time.Date(2024, 3, 11, 18, 0, 0, 0, time.UTC)), false},
		{"2024-03-11T20:00", ptr(time.Date(2024, 3, 11, 18, 0, 0, 0, time.UTC)), false},
		{"2024-03-11", ptr(time.Date(2024, 3, 11, 21, 59, 0, 0, time.UTC)), false},
		{"2024-03-11T20:00:00Z", ptr(time.Date(2024, 3, 11, 20, 0, 0, 0, time.UTC)), false},
		{"tomorrow", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDeadline(tt.in, riga)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func ptr[T any](v T) *T { return &v }
