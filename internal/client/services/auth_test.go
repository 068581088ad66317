package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_PersistsSession(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSessionRepo(t)
	fc := &fakeClient{loginToken: "tok"}

	a := NewAuthService(fc, repo)
	require.NoError(t, a.Login(ctx, "  a@b.c ", []byte("pw")))

	assert.True(t, a.LoggedIn())
	assert.Equal(t, "a@b.c", a.Email())
	assert.Equal(t, "tok", fc.token)

	s, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "a@b.c", s.Email)
	assert.Equal(t, "tok", s.Token)
}

func TestLogin_FailureKeepsLoggedOut(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSessionRepo(t)
	fc := &fakeClient{loginErr: client.ErrUnauthorized}

	a := NewAuthService(fc, repo)
	err := a.Login(ctx, "a@b.c", []byte("bad"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, a.LoggedIn())

	s, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestRestore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSessionRepo(t)

	first := NewAuthService(&fakeClient{loginToken: "tok"}, repo)
	require.NoError(t, first.Login(ctx, "a@b.c", []byte("pw")))

	fc := &fakeClient{}
	second := NewAuthService(fc, repo)
	ok, err := second.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", fc.token)
	assert.Equal(t, "a@b.c", second.Email())
}

func TestRestore_NothingSaved(t *testing.T) {
	repo, _ := newSessionRepo(t)
	a := NewAuthService(&fakeClient{}, repo)

	ok, err := a.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, a.LoggedIn())
}

func TestLogout_ClearsSession(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSessionRepo(t)
	fc := &fakeClient{loginToken: "tok"}

	a := NewAuthService(fc, repo)
	require.NoError(t, a.Login(ctx, "a@b.c", []byte("pw")))
	require.NoError(t, a.Logout(ctx))

	assert.False(t, a.LoggedIn())
	assert.Empty(t, fc.token)
	s, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestRegister_RequiresFields(t *testing.T) {
	repo, _ := newSessionRepo(t)
	a := NewAuthService(&fakeClient{}, repo)

	err := a.Register(context.Background(), " ", []byte("pw"))
	assert.ErrorIs(t, err, client.ErrValidation)

	err = a.Register(context.Background(), "a@b.c", nil)
	assert.ErrorIs(t, err, client.ErrValidation)

	assert.NoError(t, a.Register(context.Background(), "a@b.c", []byte("pw")))
}
