// Package config handles configuration for the server component: defaults,
// an optional JSON file, TASKS_* environment variables and command-line
// flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds runtime settings for the task tracker server.
//
// DatabaseDSN and SecretKey have no defaults: they must come from the JSON
// file, the environment or flags, and Validate refuses to start without them.
type Config struct {
	HTTPAddr              string        `env:"TASKS_HTTP_ADDR"`
	GRPCHealthAddr        string        `env:"TASKS_GRPC_HEALTH_ADDR"`
	DatabaseDSN           string        `env:"TASKS_DATABASE_DSN"`
	SecretKey             string        `env:"TASKS_SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"TASKS_TOKEN_VALIDITY"`
	BcryptCost            int           `env:"TASKS_BCRYPT_COST"`
	LogLevel              string        `env:"TASKS_LOG_LEVEL"`
	ShutdownTimeout       time.Duration `env:"TASKS_SHUTDOWN_TIMEOUT"`

	ReminderSchedule    string        `env:"TASKS_REMINDER_SCHEDULE"`
	RecurrenceSchedule  string        `env:"TASKS_RECURRENCE_SCHEDULE"`
	ReminderLookahead   time.Duration `env:"TASKS_REMINDER_LOOKAHEAD"`
	TimeZone            string        `env:"TASKS_TIMEZONE"`
	RunSchedulerOnStart bool          `env:"TASKS_RUN_SCHEDULER_ON_START"`

	SMTPHost     string `env:"TASKS_SMTP_HOST"`
	SMTPPort     int    `env:"TASKS_SMTP_PORT"`
	SMTPUsername string `env:"TASKS_SMTP_USERNAME"`
	SMTPPassword string `env:"TASKS_SMTP_PASSWORD"`
	MailFrom     string `env:"TASKS_MAIL_FROM"`
}

// LoadDefaults populates Config with development defaults. Secrets are left
// empty on purpose.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3001"
	c.GRPCHealthAddr = ":50051"
	c.TokenValidityDuration = 24 * time.Hour
	c.BcryptCost = 10
	c.LogLevel = "info"
	c.ShutdownTimeout = 5 * time.Second
	c.ReminderSchedule = "*/5 * * * *"
	c.RecurrenceSchedule = "0 0 * * *"
	c.ReminderLookahead = 2 * time.Hour
	c.TimeZone = "UTC"
	c.SMTPPort = 587
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
// Malformed input panics, as it can only be fixed by the operator.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate checks that the mandatory settings are present and that the
// schedule and zone settings parse.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		errs = append(errs, errors.New("database DSN is required"))
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.TokenValidityDuration <= 0 {
		errs = append(errs, errors.New("token validity must be positive"))
	}
	if c.ReminderLookahead <= 0 {
		errs = append(errs, errors.New("reminder lookahead must be positive"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	for _, spec := range []string{c.ReminderSchedule, c.RecurrenceSchedule} {
		if _, err := cron.ParseStandard(spec); err != nil {
			errs = append(errs, fmt.Errorf("invalid schedule %q: %w", spec, err))
		}
	}
	return errors.Join(errs...)
}

// Location resolves TimeZone. The scheduler uses it for "today" and for the
// end-of-day deadline of recurring tasks.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// SlogLevel maps LogLevel onto slog levels, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
