package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/client/client"
	"github.com/dmitrijs2005/tasktracker/internal/client/config"
	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/client/repositories/session"
	"github.com/dmitrijs2005/tasktracker/internal/client/services"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config      *config.Config
	authService services.AuthService
	taskService services.TaskService
	draft       models.Draft
	reader      *bufio.Reader
	out         io.Writer
	loc         *time.Location
	now         func() time.Time
	closer      io.Closer
	logger      logging.Logger

	mu   sync.RWMutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.SessionDBPath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, session.NewSQLiteRepository(db))
	ts := services.NewTaskService(apiClient, as, &models.Board{})

	app := newApp(as, ts, os.Stdin, os.Stdout)
	app.config = c
	app.closer = db
	app.logger = logger.With("module", "cli")
	return app, nil
}

func newApp(as services.AuthService, ts services.TaskService, in io.Reader, out io.Writer) *App {
	return &App{
		config:      &config.Config{},
		authService: as,
		taskService: ts,
		reader:      bufio.NewReader(in),
		out:         out,
		loc:         time.Local,
		now:         time.Now,
		logger:      logging.Discard(),
	}
}

// Run restores a saved session, starts the connectivity watcher and serves
// the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a.closer != nil {
		defer a.closer.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.printf("Welcome to the task tracker CLI (type 'help' for commands)\n")

	a.checkOnline(ctx)
	if ok, err := a.authService.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	} else if ok {
		a.printf("Logged in as %s\n", a.authService.Email())
		_ = a.Refresh(ctx)
	}

	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.authService.LoggedIn()
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != "" && a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.printf("\nSwitched to %s mode\n", mode)
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.logger.Debug(ctx, "health check failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if email := a.authService.Email(); email != "" {
		s = email + " "
	}
	switch m := a.Mode(); m {
	case ModeOnline:
		s += styles.Online.Render(string(m))
	case ModeOffline:
		s += styles.Offline.Render(string(m))
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) printError(err error) {
	fmt.Fprintln(a.out, styles.Error.Render("Error: "+describe(err)))
}
