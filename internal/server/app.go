// Package server wires the task tracker backend together: configuration,
// database, services, the HTTP API, the gRPC health endpoint and the
// background scheduler, and runs them until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	gs "github.com/dmitrijs2005/tasktracker/internal/server/grpc"
	"github.com/dmitrijs2005/tasktracker/internal/server/notify"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/server/rest"
	"github.com/dmitrijs2005/tasktracker/internal/server/scheduler"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	http      *rest.Server
	health    *gs.HealthServer
	scheduler *scheduler.Scheduler
}

// NewApp validates c, connects to the database, applies migrations and builds
// every component. Any failure here is fatal for the process.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.SlogLevel())
	gin.SetMode(gin.ReleaseMode)

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "tasktracker"),
	)

	sender, err := newSender(c, logger, loc)
	if err != nil {
		db.Close()
		return nil, err
	}

	httpServer, err := rest.NewServer(c.HTTPAddr, c.ShutdownTimeout, logger, rest.Deps{
		Users:       services.NewUserService(db, rm, c),
		Tasks:       services.NewTaskService(db, rm),
		Performance: services.NewPerformanceService(db, rm),
		Health:      db.PingContext,
	}, reg, reg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sched := scheduler.New(db, rm, sender, logger, scheduler.NewMetrics(reg), scheduler.Options{
		ReminderSchedule:   c.ReminderSchedule,
		RecurrenceSchedule: c.RecurrenceSchedule,
		Lookahead:          c.ReminderLookahead,
		Location:           loc,
		RunOnStart:         c.RunSchedulerOnStart,
	})

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		http:      httpServer,
		health:    gs.NewHealthServer(c.GRPCHealthAddr, logger),
		scheduler: sched,
	}, nil
}

func newSender(c *config.Config, logger logging.Logger, loc *time.Location) (notify.Sender, error) {
	if c.SMTPHost == "" {
		return notify.NewLogSender(logger, loc), nil
	}
	s, err := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.MailFrom,
	}, loc)
	if err != nil {
		return nil, fmt.Errorf("smtp sender: %w", err)
	}
	return s, nil
}

// Run serves until SIGINT/SIGTERM or until one component fails, then shuts
// the others down and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.http.Run(gctx)
	})

	g.Go(func() error {
		return app.health.Run(gctx)
	})

	g.Go(func() error {
		if err := app.scheduler.Start(gctx); err != nil {
			return err
		}
		app.health.SetServing(gs.SchedulerService, true)

		<-gctx.Done()

		app.health.SetServing(gs.SchedulerService, false)
		stopCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		return app.scheduler.Stop(stopCtx)
	})

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}
