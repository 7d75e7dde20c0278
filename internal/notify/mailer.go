// Package notify sends guardian notifications (incident reports and payment
// reminders) through a pluggable Mailer.
package notify

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"daycare-backend/internal/config"
)

// Mailer delivers one plain-text email. Implementations do not retry.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers through an SMTP relay (Gmail app passwords work).
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	timeout  time.Duration
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	d := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.SMTP.Host, MinVersion: tls.VersionTLS12}

	from := cfg.SMTP.From
	if from == "" {
		from = cfg.SMTP.Username
	}
	timeout := time.Duration(cfg.SMTP.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SMTPMailer{dialer: d, from: from, fromName: cfg.SMTP.FromName, timeout: timeout}
}

func (m *SMTPMailer) message(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}

// Send dials the relay and delivers the message. gomail has no context
// support, so the call is abandoned (not cancelled) once ctx or the
// configured timeout expires.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	msg := m.message(to, subject, body)
	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		return errors.Wrap(err, "smtp send")
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "smtp send")
	}
}

// LogMailer writes messages to the log instead of sending them. Used when
// no SMTP host is configured.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("mail not sent (no SMTP host configured)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)),
	)
	return nil
}

// FromConfig picks the SMTP mailer when a host is configured.
func FromConfig(cfg *config.Config, logger *zap.Logger) Mailer {
	if cfg.SMTP.Host == "" {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg)
}
