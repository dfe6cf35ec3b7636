package notify

import (
	"context"
	"log/slog"
)

// LogDispatcher writes notifications to the log instead of sending email.
// Used in development and when no sender address is configured.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) SendExpiredEmail(ctx context.Context, n Notification) error {
	d.log(ctx, "expired", n)
	return nil
}

func (d *LogDispatcher) SendExpiringSoonEmail(ctx context.Context, n Notification) error {
	d.log(ctx, "expiring_soon", n)
	return nil
}

func (d *LogDispatcher) SendMissingEmail(ctx context.Context, n Notification) error {
	d.log(ctx, "missing", n)
	return nil
}

func (d *LogDispatcher) log(ctx context.Context, kind string, n Notification) {
	attrs := []any{
		"kind", kind,
		"user_id", n.User.ID,
		"email", n.User.Email,
		"certification", n.CertificationName,
	}
	if n.ExpirationDate != nil {
		attrs = append(attrs, "expires_on", n.ExpirationDate.Format("2006-01-02"))
	}
	d.logger.InfoContext(ctx, "notification (log only)", attrs...)
}
