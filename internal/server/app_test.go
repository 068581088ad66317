package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_RefusesIncompleteConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database DSN is required")
	assert.Contains(t, err.Error(), "secret key is required")
}

func TestNewSender(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	s, err := newSender(cfg, logging.Discard(), time.UTC)
	require.NoError(t, err)
	assert.IsType(t, &notify.LogSender{}, s)

	cfg.SMTPHost = "smtp.example.com"
	cfg.MailFrom = "tasks@example.com"
	s, err = newSender(cfg, logging.Discard(), time.UTC)
	require.NoError(t, err)
	assert.IsType(t, &notify.SMTPSender{}, s)
}
