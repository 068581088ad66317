package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
	"github.com/dmitrijs2005/tasktracker/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so they can be written as "24h" or "5m".
type JsonConfig struct {
	HTTPAddr              string         `json:"http_addr"`
	GRPCHealthAddr        string         `json:"grpc_health_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
	LogLevel              string         `json:"log_level"`
	ShutdownTimeout       timex.Duration `json:"shutdown_timeout"`
	ReminderSchedule      string         `json:"reminder_schedule"`
	RecurrenceSchedule    string         `json:"recurrence_schedule"`
	ReminderLookahead     timex.Duration `json:"reminder_lookahead"`
	TimeZone              string         `json:"timezone"`
	RunSchedulerOnStart   *bool          `json:"run_scheduler_on_start"`
	SMTPHost              string         `json:"smtp_host"`
	SMTPPort              int            `json:"smtp_port"`
	SMTPUsername          string         `json:"smtp_username"`
	SMTPPassword          string         `json:"smtp_password"`
	MailFrom              string         `json:"mail_from"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// field it sets into config. Keys absent from the file keep their current
// value. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.ReminderSchedule, c.ReminderSchedule)
	setString(&config.RecurrenceSchedule, c.RecurrenceSchedule)
	setString(&config.TimeZone, c.TimeZone)
	setString(&config.SMTPHost, c.SMTPHost)
	setString(&config.SMTPUsername, c.SMTPUsername)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.MailFrom, c.MailFrom)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.ReminderLookahead.Duration != 0 {
		config.ReminderLookahead = c.ReminderLookahead.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	if c.RunSchedulerOnStart != nil {
		config.RunSchedulerOnStart = *c.RunSchedulerOnStart
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
