package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", string(hash))

	ok, err := CheckPassword(hash, []byte("hunter2"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, []byte("hunter3"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword([]byte("same"), bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword([]byte("same"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_BadCostFallsBack(t *testing.T) {
	hash, err := HashPassword([]byte("pw"), 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCheckPassword_CorruptHash(t *testing.T) {
	_, err := CheckPassword([]byte("not-a-hash"), []byte("pw"))
	require.Error(t, err)
}
