package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// mailDialer is the part of *mail.Client used here, so tests can capture
// messages without a server.
type mailDialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPSender mails reminders through an SMTP relay.
type SMTPSender struct {
	client mailDialer
	from   string
	loc    *time.Location
}

// NewSMTPSender builds a sender for cfg. Authentication is enabled only when a
// username is configured; TLS is used when the server offers it.
func NewSMTPSender(cfg SMTPConfig, loc *time.Location) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(15 * time.Second),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSender{client: client, from: from, loc: loc}, nil
}

// buildMessage assembles the plain-text reminder mail.
func (s *SMTPSender) buildMessage(r Reminder) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", s.from, err)
	}
	if err := m.To(r.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", r.To, err)
	}
	m.Subject(ReminderSubject)
	m.SetBodyString(mail.TypeTextPlain, FormatBody(r, s.loc))
	return m, nil
}

func (s *SMTPSender) Send(ctx context.Context, r Reminder) error {
	m, err := s.buildMessage(r)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
