package mail

import (
	"context"
	"log/slog"

	"github.com/robochamp/backend/pkg/slogx"
)

// LogMailer writes messages to the log instead of sending them. Used in
// development where no SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	slogx.FromContext(ctx).Info("mail (log only)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Text),
	)
	return nil
}
