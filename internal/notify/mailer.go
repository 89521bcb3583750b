package notify

import (
	"context"

	"tradecase-backend/internal/shared/telemetry"
)

// Attachment is a binary part of an outgoing email.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Message is an outgoing email.
type Message struct {
	To          string
	ToName      string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Mailer delivers messages. Implementations must return a non-nil error when
// delivery did not happen; callers gate state changes on that.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NoopMailer logs the message and reports success. Used when no mail
// provider is configured (development mode).
type NoopMailer struct{}

// Send logs the would-be delivery and succeeds.
func (NoopMailer) Send(_ context.Context, msg Message) error {
	telemetry.Info("mail.noop", map[string]any{
		"to":          msg.To,
		"subject":     msg.Subject,
		"attachments": len(msg.Attachments),
	})
	return nil
}

var _ Mailer = NoopMailer{}
