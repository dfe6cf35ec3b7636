package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"rescueops/internal/audit"
	"rescueops/internal/catalog"
	"rescueops/internal/certification"
	"rescueops/internal/notify"
	"rescueops/internal/platform/metrics"
	"rescueops/internal/reminder"
	"rescueops/internal/roster"
	"rescueops/pkg/platform/sentinel"
)

// Checker runs the certification check cycle: resolve each member's required
// certifications, classify their holdings, and dispatch reminders for
// expired, expiring-soon, and missing certifications.
//
// Reminder persistence is at-most-once-on-success: a reminder record is
// written only after the notification was dispatched. A dispatch failure is
// logged and leaves no record, so the next scheduled cycle retries it.
// Writing the record first would permanently suppress a legitimate send.
type Checker struct {
	users      roster.Store
	roles      catalog.RoleStore
	tracks     catalog.TrackStore
	certTypes  catalog.CertificationTypeStore
	certs      certification.Store
	reminders  reminder.Store
	dispatcher notify.Dispatcher
	recorder   *audit.Recorder
	metrics    *metrics.Metrics
	logger     *slog.Logger
	tracer     trace.Tracer

	// now is swapped in tests to exercise expiry boundaries.
	now func() time.Time

	// userTimeout bounds a single member's evaluation so one hung dependency
	// cannot stall the whole batch. Zero disables the per-user deadline.
	userTimeout time.Duration
}

// CheckerConfig collects the Checker's many dependencies.
type CheckerConfig struct {
	Users       roster.Store
	Roles       catalog.RoleStore
	Tracks      catalog.TrackStore
	CertTypes   catalog.CertificationTypeStore
	Certs       certification.Store
	Reminders   reminder.Store
	Dispatcher  notify.Dispatcher
	Recorder    *audit.Recorder
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	UserTimeout time.Duration
}

func NewChecker(cfg CheckerConfig) *Checker {
	return &Checker{
		users:       cfg.Users,
		roles:       cfg.Roles,
		tracks:      cfg.Tracks,
		certTypes:   cfg.CertTypes,
		certs:       cfg.Certs,
		reminders:   cfg.Reminders,
		dispatcher:  cfg.Dispatcher,
		recorder:    cfg.Recorder,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		tracer:      otel.Tracer("rescueops/compliance"),
		now:         time.Now,
		userTimeout: cfg.UserTimeout,
	}
}

// SetClock overrides the checker's notion of now. Test use only.
func (c *Checker) SetClock(now func() time.Time) {
	c.now = now
}

// CheckAllUserCertifications runs one full check cycle across the roster.
// Reference data is loaded once up front and treated as read-only for the
// cycle; a member whose evaluation fails is logged and skipped so the rest of
// the batch proceeds.
func (c *Checker) CheckAllUserCertifications(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "CheckAllUserCertifications")
	defer span.End()

	start := time.Now()
	defer func() {
		c.metrics.CheckDuration.Observe(time.Since(start).Seconds())
	}()
	c.metrics.CheckCycles.Inc()

	roles, err := c.roles.List(ctx)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	tracks, err := c.tracks.List(ctx)
	if err != nil {
		return fmt.Errorf("load tracks: %w", err)
	}
	certTypes, err := c.certTypes.List(ctx)
	if err != nil {
		return fmt.Errorf("load certification types: %w", err)
	}
	users, err := c.users.List(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	c.logger.InfoContext(ctx, "starting certification check cycle",
		"users", len(users),
		"roles", len(roles),
		"tracks", len(tracks),
		"certification_types", len(certTypes),
	)

	for _, user := range users {
		if err := c.checkUser(ctx, user, roles, tracks, certTypes); err != nil {
			c.logger.ErrorContext(ctx, "member check failed",
				"user_id", user.ID,
				"error", err.Error(),
			)
		}
		c.metrics.UsersChecked.Inc()
	}
	return nil
}

// evaluation is one member's classified certifications for a cycle, bucketed
// in the fixed processing order: expired, expiring soon, missing.
type evaluation struct {
	expired      []*certification.Certification
	expiringSoon []*certification.Certification
	missing      []*catalog.CertificationType
}

func (c *Checker) checkUser(
	ctx context.Context,
	user *roster.User,
	roles []*catalog.Role,
	tracks []*catalog.Track,
	certTypes []*catalog.CertificationType,
) error {
	if c.userTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.userTimeout)
		defer cancel()
	}

	eval, err := c.evaluate(ctx, user, roles, tracks, certTypes)
	if err != nil {
		return err
	}

	for _, cert := range eval.expired {
		c.remind(ctx, user, reminder.TypeExpired, cert.ID, cert.CertificationTypeName, cert.ExpiresOn)
	}
	for _, cert := range eval.expiringSoon {
		c.remind(ctx, user, reminder.TypeExpiringSoon, cert.ID, cert.CertificationTypeName, cert.ExpiresOn)
	}
	for _, ct := range eval.missing {
		c.remind(ctx, user, reminder.TypeMissing, reminder.MissingCertificationID(ct.Name), ct.Name, nil)
	}
	return nil
}

// evaluate classifies the member's holdings. Expiry reminders consider every
// live holding, required or not; missing reminders consider only the required
// set. Where a member somehow holds several live records of one type, the
// most recent upload is the one classified.
func (c *Checker) evaluate(
	ctx context.Context,
	user *roster.User,
	roles []*catalog.Role,
	tracks []*catalog.Track,
	certTypes []*catalog.CertificationType,
) (*evaluation, error) {
	required := RequiredCertifications(user, roles, tracks, certTypes)

	holdings, err := c.certs.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load certifications: %w", err)
	}

	// ListByUser is newest-first, so the first record seen per type wins.
	latest := make(map[string]*certification.Certification)
	for _, cert := range holdings {
		if _, ok := latest[cert.CertificationTypeName]; !ok {
			latest[cert.CertificationTypeName] = cert
		}
	}

	now := c.now()
	eval := &evaluation{}
	for _, ct := range certTypes {
		cert, held := latest[ct.Name]
		if !held {
			continue
		}
		switch Classify(cert, now) {
		case StatusExpired:
			eval.expired = append(eval.expired, cert)
		case StatusExpiringSoon:
			eval.expiringSoon = append(eval.expiringSoon, cert)
		}
	}
	for _, ct := range required {
		if _, held := latest[ct.Name]; !held {
			eval.missing = append(eval.missing, ct)
		}
	}
	return eval, nil
}

// remind runs the guarded dispatch for one condition: skip when a reminder
// for the tuple is already on record, otherwise dispatch and persist.
func (c *Checker) remind(
	ctx context.Context,
	user *roster.User,
	typ reminder.Type,
	certificationID string,
	certName string,
	expiresOn *time.Time,
) {
	already, err := c.reminders.HasReminderOfType(ctx, user.ID, certificationID, typ)
	if err != nil {
		c.logger.ErrorContext(ctx, "reminder dedup check failed",
			"user_id", user.ID,
			"certification_id", certificationID,
			"reminder_type", string(typ),
			"error", err.Error(),
		)
		return
	}
	if already {
		c.metrics.RemindersSkipped.WithLabelValues(string(typ)).Inc()
		return
	}

	notification := notify.Notification{
		User:              user,
		CertificationName: certName,
		ExpirationDate:    expiresOn,
	}
	if err := c.dispatch(ctx, typ, notification); err != nil {
		// Deliberate: no reminder record on a failed send. The next cycle
		// retries; persisting here would suppress a legitimate future send.
		c.metrics.RemindersFailed.WithLabelValues(string(typ)).Inc()
		c.recorder.Record(audit.ActionReminderFailed, user.ID, certName,
			map[string]string{"reminder_type": string(typ), "error": err.Error()})
		c.logger.ErrorContext(ctx, "notification dispatch failed",
			"user_id", user.ID,
			"certification", certName,
			"reminder_type", string(typ),
			"error", err.Error(),
		)
		return
	}

	rec := &reminder.Reminder{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		CertificationID: certificationID,
		Type:            typ,
		SentAt:          c.now(),
	}
	if err := c.reminders.Create(ctx, rec); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// A concurrent cycle won the conditional insert after our dedup
			// check; the member received a duplicate email but the record
			// stays unique.
			c.logger.WarnContext(ctx, "reminder already recorded by concurrent cycle",
				"user_id", user.ID,
				"certification_id", certificationID,
				"reminder_type", string(typ),
			)
			return
		}
		c.logger.ErrorContext(ctx, "persist reminder failed",
			"user_id", user.ID,
			"certification_id", certificationID,
			"reminder_type", string(typ),
			"error", err.Error(),
		)
		return
	}

	c.metrics.RemindersSent.WithLabelValues(string(typ)).Inc()
	c.recorder.Record(audit.ActionReminderSent, user.ID, certName,
		map[string]string{"reminder_type": string(typ), "certification_id": certificationID})
	c.logger.InfoContext(ctx, "reminder sent",
		"user_id", user.ID,
		"certification", certName,
		"reminder_type", string(typ),
	)
}

func (c *Checker) dispatch(ctx context.Context, typ reminder.Type, n notify.Notification) error {
	switch typ {
	case reminder.TypeExpired:
		return c.dispatcher.SendExpiredEmail(ctx, n)
	case reminder.TypeExpiringSoon:
		return c.dispatcher.SendExpiringSoonEmail(ctx, n)
	case reminder.TypeMissing:
		return c.dispatcher.SendMissingEmail(ctx, n)
	default:
		return fmt.Errorf("unknown reminder type %q: %w", typ, sentinel.ErrInvalidState)
	}
}
