// Package services contains the CLI's application services: the login session
// and the task board kept in sync with the server.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/client/client"
	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/client/repositories/session"
)

// AuthService owns the session credential. The credential is the only state
// the CLI keeps between runs.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	// Restore loads a saved session, if any, and reports whether one was found.
	Restore(ctx context.Context) (bool, error)
	Ping(ctx context.Context) error
	Email() string
	LoggedIn() bool
}

type authService struct {
	client client.Client
	repo   session.Repository
	now    func() time.Time

	mu    sync.RWMutex
	email string
}

func NewAuthService(c client.Client, repo session.Repository) AuthService {
	return &authService{client: c, repo: repo, now: time.Now}
}

func (a *authService) Register(ctx context.Context, email string, password []byte) error {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return fmt.Errorf("%w: email and password required", client.ErrValidation)
	}
	return a.client.Register(ctx, email, string(password))
}

// Login authenticates online and persists the returned token.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	email = strings.TrimSpace(email)

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.repo.Save(ctx, models.Session{Email: email, Token: token, SavedAt: a.now().UTC()}); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	a.client.SetToken(token)
	a.mu.Lock()
	a.email = email
	a.mu.Unlock()
	return nil
}

// Logout forgets the credential both in memory and on disk.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	a.mu.Lock()
	a.email = ""
	a.mu.Unlock()
	return a.repo.Clear(ctx)
}

func (a *authService) Restore(ctx context.Context) (bool, error) {
	s, err := a.repo.Load(ctx)
	if err != nil {
		return false, err
	}
	if s == nil || s.Token == "" {
		return false, nil
	}

	a.client.SetToken(s.Token)
	a.mu.Lock()
	a.email = s.Email
	a.mu.Unlock()
	return true, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Email() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.email
}

func (a *authService) LoggedIn() bool {
	return a.Email() != ""
}

// dropOnUnauthorized logs the user out when err says the credential was
// rejected, and returns err unchanged.
func dropOnUnauthorized(ctx context.Context, a AuthService, err error) error {
	if err != nil && errors.Is(err, client.ErrUnauthorized) && a.LoggedIn() {
		_ = a.Logout(ctx)
	}
	return err
}
