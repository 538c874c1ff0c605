// Package email delivers notification emails over SMTP.
package email

import (
	"creatordna_backend/internal/config"

	"gopkg.in/gomail.v2"
)

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender returns nil when email delivery is disabled, which
// callers treat as "no email channel".
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	if !cfg.Email.Enabled || cfg.Email.SMTPHost == "" {
		return nil
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
		),
		from: cfg.Email.FromEmail,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}
