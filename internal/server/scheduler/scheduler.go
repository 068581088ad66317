// Package scheduler runs the periodic background work of the server: deadline
// reminders and daily materialization of recurring tasks.
//
// Only one scheduler may run per deployment. Two instances would send
// duplicate reminders and could race on recurring task creation.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/notify"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/timex"
	"github.com/dmitrijs2005/tasktracker/internal/weekday"
	"github.com/robfig/cron/v3"
)

const (
	passReminder   = "reminder"
	passRecurrence = "recurrence"
)

// Options configure the scheduler's timing.
type Options struct {
	ReminderSchedule   string // standard 5-field cron spec
	RecurrenceSchedule string
	Lookahead          time.Duration
	Location           *time.Location // defines "today" and the cron clock
	RunOnStart         bool
}

type Scheduler struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sender      notify.Sender
	logger      logging.Logger
	metrics     *Metrics
	opts        Options
	now         func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

func New(db *sql.DB, m repomanager.RepositoryManager, sender notify.Sender, logger logging.Logger, metrics *Metrics, opts Options) *Scheduler {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Scheduler{
		db:          db,
		repomanager: m,
		sender:      sender,
		logger:      logger.With("module", "scheduler"),
		metrics:     metrics,
		opts:        opts,
		now:         time.Now,
	}
}

// ReminderPass notifies the owner of every incomplete task whose deadline
// falls in [now, now+lookahead] and has not been reminded for that deadline
// yet. A failed delivery leaves the task eligible for the next pass.
func (s *Scheduler) ReminderPass(ctx context.Context) (sent int, err error) {
	defer s.observe(ctx, passReminder, time.Now(), &err)

	now := s.now()
	repo := s.repomanager.Tasks(s.db)

	due, err := repo.FindDueForReminder(ctx, now, now.Add(s.opts.Lookahead))
	if err != nil {
		return 0, fmt.Errorf("error loading due tasks: %w", err)
	}

	for _, d := range due {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		r := notify.Reminder{To: d.Email, TaskText: d.Text, Deadline: d.Deadline}
		if err := s.sender.Send(ctx, r); err != nil {
			s.metrics.ReminderFails.Inc()
			s.logger.Error(ctx, "reminder delivery failed", "task_id", d.TaskID, "error", err)
			continue
		}

		sent++
		s.metrics.RemindersSent.Inc()

		if err := repo.MarkReminded(ctx, d.TaskID, d.Deadline, now); err != nil {
			s.metrics.ReminderFails.Inc()
			s.logger.Error(ctx, "could not record reminder", "task_id", d.TaskID, "error", err)
		}
	}

	return sent, nil
}

// RecurrencePass creates today's occurrence of every task that repeats on
// the current weekday, unless the owner already has a task with the same
// text created today.
func (s *Scheduler) RecurrencePass(ctx context.Context) (created int, err error) {
	defer s.observe(ctx, passRecurrence, time.Now(), &err)

	now := s.now().In(s.opts.Location)
	day := weekday.Of(now)
	from := timex.StartOfDay(now, s.opts.Location)
	to := from.AddDate(0, 0, 1)

	templates, err := s.repomanager.Tasks(s.db).FindRecurring(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("error loading recurring tasks: %w", err)
	}

	// occurrences carry the repeat days too, so several rows can share one
	// (owner, text) pair
	seen := make(map[[2]string]struct{}, len(templates))

	for _, tpl := range templates {
		if ctx.Err() != nil {
			return created, ctx.Err()
		}

		key := [2]string{tpl.UserID, tpl.Text}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		ok, err := s.materialize(ctx, tpl, now, from, to)
		if err != nil {
			s.logger.Error(ctx, "could not create occurrence", "task_id", tpl.ID, "error", err)
			continue
		}
		if ok {
			created++
			s.metrics.Materialized.Inc()
		}
	}

	s.logger.Debug(ctx, "recurrence pass done", "day", day, "templates", len(templates), "created", created)
	return created, nil
}

func (s *Scheduler) materialize(ctx context.Context, tpl *models.Task, now, from, to time.Time) (bool, error) {
	var created bool

	err := dbx.WithTx(ctx, s.db, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		exists, err := repo.ExistsCreatedBetween(ctx, tpl.UserID, tpl.Text, from, to)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		occ := &models.Task{
			UserID:     tpl.UserID,
			Text:       tpl.Text,
			RepeatDays: append(models.Weekdays{}, tpl.RepeatDays...),
		}
		if tpl.Deadline != nil {
			d := timex.EndOfDay(now, s.opts.Location).UTC()
			occ.Deadline = &d
		}

		if _, err := repo.Create(ctx, occ); err != nil {
			return err
		}
		created = true
		return nil
	})

	return created, err
}

func (s *Scheduler) observe(ctx context.Context, pass string, started time.Time, err *error) {
	s.metrics.PassDuration.WithLabelValues(pass).Observe(time.Since(started).Seconds())

	outcome := "ok"
	if *err != nil {
		outcome = "error"
		s.logger.Error(ctx, "scheduler pass failed", "pass", pass, "error", *err)
	}
	s.metrics.PassRuns.WithLabelValues(pass, outcome).Inc()
}

// Start registers both passes on a cron clock in the configured location and
// starts it. Jobs run with ctx and a run that overlaps the previous one of the
// same pass is skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return fmt.Errorf("scheduler already started")
	}

	cl := cronLogger{ctx: ctx, l: s.logger}
	c := cron.New(
		cron.WithLocation(s.opts.Location),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	reminders := func() { _, _ = s.ReminderPass(ctx) }
	recurrence := func() { _, _ = s.RecurrencePass(ctx) }

	if _, err := c.AddFunc(s.opts.ReminderSchedule, reminders); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.opts.ReminderSchedule, err)
	}
	if _, err := c.AddFunc(s.opts.RecurrenceSchedule, recurrence); err != nil {
		return fmt.Errorf("invalid recurrence schedule %q: %w", s.opts.RecurrenceSchedule, err)
	}

	if s.opts.RunOnStart {
		recurrence()
		reminders()
	}

	c.Start()
	s.cron = c
	s.logger.Info(ctx, "scheduler started",
		"reminders", s.opts.ReminderSchedule,
		"recurrence", s.opts.RecurrenceSchedule,
		"tz", s.opts.Location.String())
	return nil
}

// Stop stops the clock and waits for running passes until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return nil
	}

	select {
	case <-c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger routes cron's own messages into the application logger.
type cronLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(c.ctx, "cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(c.ctx, "cron: "+msg, append(keysAndValues, "error", err)...)
}
