// Package notify sends the confirmation email after a submission is
// persisted. Delivery failures are never allowed to fail the submission
// flow; callers log and move on.
package notify

import "context"

// Notifier is the outbound email capability.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Noop discards every message. Used when no mailer is configured.
type Noop struct{}

func (Noop) Send(context.Context, string, string, string) error { return nil }
