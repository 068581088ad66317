// Package session stores the CLI's login between runs.
package session

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
)

// Repository keeps at most one session.
type Repository interface {
	// Load returns nil, nil when nobody is logged in.
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}
