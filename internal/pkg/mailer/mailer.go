package mailer

import (
	"context"
	"log"
)

// Mailer delivers account emails. Implementations must not log the
// verification code; the dev console mailer is the delivery channel itself.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

type DevConsoleMailer struct {
	enabled bool
}

func NewDevConsoleMailer(enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{enabled: enabled}
}

func (m *DevConsoleMailer) SendVerificationCode(_ context.Context, email, code string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] verification code email=%s code=%s", email, code)
	}
	return nil
}
