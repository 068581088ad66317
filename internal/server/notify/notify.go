// Package notify delivers deadline reminders to task owners.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
)

// ReminderSubject is the subject line of every reminder mail.
const ReminderSubject = "Todo deadline is near!"

// Reminder is one message to deliver.
type Reminder struct {
	To       string
	TaskText string
	Deadline time.Time
}

// Sender delivers a single reminder. Implementations must honor ctx.
type Sender interface {
	Send(ctx context.Context, r Reminder) error
}

// FormatBody renders the reminder text with the deadline shown in loc.
func FormatBody(r Reminder, loc *time.Location) string {
	return fmt.Sprintf("Reminder: Your task \"%s\" is due at %s",
		r.TaskText, r.Deadline.In(loc).Format("2006-01-02 15:04 MST"))
}

// LogSender writes reminders to the log instead of mailing them. It is used
// when no SMTP host is configured.
type LogSender struct {
	logger logging.Logger
	loc    *time.Location
}

func NewLogSender(logger logging.Logger, loc *time.Location) *LogSender {
	return &LogSender{logger: logger.With("module", "notify"), loc: loc}
}

func (s *LogSender) Send(ctx context.Context, r Reminder) error {
	s.logger.Info(ctx, "reminder (mail disabled)",
		"to", r.To, "subject", ReminderSubject, "body", FormatBody(r, s.loc))
	return nil
}
