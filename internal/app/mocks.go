package app

import (
	"trailbook_backend/internal/email"
	"trailbook_backend/internal/logger"
)

// LogEmailProvider is the delivery fallback for local development and
// tests: messages are logged, never sent.
type LogEmailProvider struct{}

func (p *LogEmailProvider) Send(msg *email.Email) error {
	logger.Info("Email (not sent)", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (p *LogEmailProvider) Close() error { return nil }
