package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tasktracker/internal/client/client"
	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password and creates the account. It
// does not log in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, email, password); err != nil {
		a.printError(err)
		return err
	}

	a.printf("Registered %s, you can login now\n", email)
	return nil
}

// Login prompts for credentials, stores the session and loads the task list.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		a.printError(err)
		return err
	}

	a.setMode(ModeOnline)
	a.printf("Logged in as %s\n", a.authService.Email())
	return a.Refresh(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	a.taskService.Board().Clear()
	a.draft.Reset()
	if err := a.authService.Logout(ctx); err != nil {
		a.printError(err)
		return err
	}
	a.printf("Logged out\n")
	return nil
}

func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		if errors.Is(err, client.ErrUnauthorized) && apiErr.Message == "unauthorized" {
			return "session expired, please login again"
		}
		return apiErr.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	}
	return err.Error()
}
