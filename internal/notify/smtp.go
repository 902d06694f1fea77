// Package notify delivers mails over SMTP.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	from   string
	dialer sender
	logger *slog.Logger
}

// NewSMTPMailer returns a mailer that opens one SMTP session per mail.  An
// empty host disables delivery; mails are then only logged.
func NewSMTPMailer(host string, port int, user, pass, from string, logger *slog.Logger) *SMTPMailer {
	m := &SMTPMailer{from: from, logger: logger}
	if host != "" {
		m.dialer = gomail.NewDialer(host, port, user, pass)
	}
	return m
}

func (s *SMTPMailer) Send(ctx context.Context, mail model.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.dialer == nil {
		s.logger.Debug("mail skipped (smtp disabled)", "to", mail.To, "subject", mail.Subject)
		return nil
	}
	if err := s.dialer.DialAndSend(s.message(mail)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", mail.To, err)
	}
	return nil
}

func (s *SMTPMailer) message(mail model.Mail) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", mail.Subject)
	m.SetBody("text/plain", mail.Body)
	for _, a := range mail.Attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}
	return m
}
