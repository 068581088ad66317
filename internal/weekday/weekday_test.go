package weekday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("monday"))
	assert.True(t, IsValid("Sunday"))
	assert.False(t, IsValid("mon"))
	assert.False(t, IsValid(""))
}

func TestOf(t *testing.T) {
	// 2024-01-01 was a Monday.
	assert.Equal(t, "monday", Of(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "sunday", Of(time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)))
}

func TestNormalize(t *testing.T) {
	got, err := Normalize([]string{"Friday", "monday", "friday"})
	require.NoError(t, err)
	assert.Equal(t, []string{"monday", "friday"}, got)

	empty, err := Normalize(nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = Normalize([]string{"someday"})
	require.Error(t, err)
}

func TestAbbrev(t *testing.T) {
	assert.Equal(t, "wed", Abbrev("wednesday"))
	assert.Equal(t, "x", Abbrev("x"))
}
