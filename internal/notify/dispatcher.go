// Package notify dispatches certification reminder emails to members.
package notify

import (
	"context"
	"time"

	"rescueops/internal/roster"
)

// Notification carries everything a reminder email needs. ExpirationDate is
// nil for missing-certification notices.
type Notification struct {
	User              *roster.User
	CertificationName string
	ExpirationDate    *time.Time
}

//go:generate mockgen -source=dispatcher.go -destination=mocks/mocks.go -package=mocks

// Dispatcher sends reminder emails. A returned error means the notification
// was not delivered; the compliance engine does not retry within a cycle and
// records no reminder, so the next scheduled cycle tries again.
type Dispatcher interface {
	SendExpiredEmail(ctx context.Context, n Notification) error
	SendExpiringSoonEmail(ctx context.Context, n Notification) error
	SendMissingEmail(ctx context.Context, n Notification) error
}
