package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
}

// SMTPMailer sends verification emails over SMTP via gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	app    string
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	app := cfg.AppName
	if app == "" {
		app = "Brand Market"
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		app:    app,
	}
}

func (m *SMTPMailer) SendVerificationCode(_ context.Context, email, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", fmt.Sprintf("%s: your verification code", m.app))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your %s verification code is %s.\n\nIt expires in 10 minutes. If you did not request it, ignore this email.\n",
		m.app, code,
	))
	msg.AddAlternative("text/html", fmt.Sprintf(
		"<p>Your %s verification code is <b>%s</b>.</p><p>It expires in 10 minutes. If you did not request it, ignore this email.</p>",
		m.app, code,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
