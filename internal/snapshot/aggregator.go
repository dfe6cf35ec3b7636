package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"rescueops/internal/audit"
	"rescueops/internal/catalog"
	"rescueops/internal/certification"
	"rescueops/internal/compliance"
	"rescueops/internal/platform/metrics"
	"rescueops/internal/reminder"
	"rescueops/internal/roster"
)

// Aggregator recomputes the organization-wide compliance rollup and persists
// it as the day's snapshot.
type Aggregator struct {
	users     roster.Store
	roles     catalog.RoleStore
	tracks    catalog.TrackStore
	certTypes catalog.CertificationTypeStore
	certs     certification.Store
	reminders reminder.Store
	store     Store
	recorder  *audit.Recorder
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// AggregatorConfig collects the Aggregator's dependencies.
type AggregatorConfig struct {
	Users     roster.Store
	Roles     catalog.RoleStore
	Tracks    catalog.TrackStore
	CertTypes catalog.CertificationTypeStore
	Certs     certification.Store
	Reminders reminder.Store
	Store     Store
	Recorder  *audit.Recorder
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

func NewAggregator(cfg AggregatorConfig) *Aggregator {
	return &Aggregator{
		users:     cfg.Users,
		roles:     cfg.Roles,
		tracks:    cfg.Tracks,
		certTypes: cfg.CertTypes,
		certs:     cfg.Certs,
		reminders: cfg.Reminders,
		store:     cfg.Store,
		recorder:  cfg.Recorder,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		tracer:    otel.Tracer("rescueops/snapshot"),
		now:       time.Now,
	}
}

// SetClock overrides the aggregator's notion of now. Test use only.
func (a *Aggregator) SetClock(now func() time.Time) {
	a.now = now
}

// GenerateAndSave computes today's snapshot and persists it, overwriting any
// snapshot already recorded for the date.
func (a *Aggregator) GenerateAndSave(ctx context.Context) (*Snapshot, error) {
	ctx, span := a.tracer.Start(ctx, "GenerateAndSaveSnapshot")
	defer span.End()

	start := time.Now()
	defer func() {
		a.metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	}()

	roles, err := a.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	tracks, err := a.tracks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tracks: %w", err)
	}
	certTypes, err := a.certTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load certification types: %w", err)
	}
	users, err := a.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	allCerts, err := a.certs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load certifications: %w", err)
	}

	now := a.now()
	snap := &Snapshot{
		Date:                DateKey(now),
		TotalUsers:          len(users),
		ByRole:              make(map[string]GroupStats),
		ByTrack:             make(map[string]GroupStats),
		ByCertificationType: make(map[string]CertTypeStats),
		GeneratedAt:         now,
	}

	// Live holdings grouped by member; reports reuse the engine's
	// classification rules so the dashboard never disagrees with reminders.
	holdingsByUser := make(map[string][]*certification.Certification)
	for _, cert := range allCerts {
		if cert.Deleted() {
			continue
		}
		holdingsByUser[cert.UserID] = append(holdingsByUser[cert.UserID], cert)
	}

	reports := make(map[string]*compliance.Report, len(users))
	for _, user := range users {
		report := compliance.BuildReport(user, roles, tracks, certTypes, holdingsByUser[user.ID], now)
		reports[user.ID] = report
		if report.Compliant {
			snap.CompliantUsers++
		}
	}
	if snap.TotalUsers > 0 {
		snap.OverallComplianceRate = float64(snap.CompliantUsers) / float64(snap.TotalUsers)
	} else {
		snap.OverallComplianceRate = 1.0
	}

	a.groupStats(snap, users, reports, roles)
	a.certTypeStats(snap, users, reports, certTypes, holdingsByUser, now)

	since := now.Add(-24 * time.Hour)
	counts, err := a.reminders.CountSentSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count recent reminders: %w", err)
	}
	snap.RemindersLastDay = counts

	if err := a.store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	a.recorder.Record(audit.ActionSnapshotGenerated, "", snap.Date, map[string]string{
		"total_users":     fmt.Sprintf("%d", snap.TotalUsers),
		"compliant_users": fmt.Sprintf("%d", snap.CompliantUsers),
	})
	a.logger.InfoContext(ctx, "snapshot generated",
		"date", snap.Date,
		"total_users", snap.TotalUsers,
		"compliant_users", snap.CompliantUsers,
		"compliance_rate", snap.OverallComplianceRate,
	)
	return snap, nil
}

// groupStats fills the per-role and per-track breakdowns. Role membership is
// by role name on any assignment; track membership is by the track named in
// the specific assignment tuple.
func (a *Aggregator) groupStats(
	snap *Snapshot,
	users []*roster.User,
	reports map[string]*compliance.Report,
	roles []*catalog.Role,
) {
	type tally struct{ total, compliant int }
	roleTally := make(map[string]*tally)
	trackTally := make(map[string]*tally)
	for _, role := range roles {
		roleTally[role.Name] = &tally{}
	}

	for _, user := range users {
		compliant := reports[user.ID].Compliant
		seenRoles := make(map[string]bool)
		seenTracks := make(map[string]bool)
		for _, mr := range user.MembershipRoles {
			if !seenRoles[mr.RoleName] {
				seenRoles[mr.RoleName] = true
				t, ok := roleTally[mr.RoleName]
				if !ok {
					t = &tally{}
					roleTally[mr.RoleName] = t
				}
				t.total++
				if compliant {
					t.compliant++
				}
			}
			if mr.TrackName != "" && !seenTracks[mr.TrackName] {
				seenTracks[mr.TrackName] = true
				t, ok := trackTally[mr.TrackName]
				if !ok {
					t = &tally{}
					trackTally[mr.TrackName] = t
				}
				t.total++
				if compliant {
					t.compliant++
				}
			}
		}
	}

	for name, t := range roleTally {
		snap.ByRole[name] = groupStatsFrom(t.total, t.compliant)
	}
	for name, t := range trackTally {
		snap.ByTrack[name] = groupStatsFrom(t.total, t.compliant)
	}
}

func groupStatsFrom(total, compliant int) GroupStats {
	stats := GroupStats{UserCount: total, CompliantCount: compliant}
	if total > 0 {
		stats.ComplianceRate = float64(compliant) / float64(total)
	}
	return stats
}

// certTypeStats fills the per-certification-type breakdown.
func (a *Aggregator) certTypeStats(
	snap *Snapshot,
	users []*roster.User,
	reports map[string]*compliance.Report,
	certTypes []*catalog.CertificationType,
	holdingsByUser map[string][]*certification.Certification,
	now time.Time,
) {
	needers := make(map[string]int)
	for _, report := range reports {
		for _, req := range report.Requirements {
			needers[req.CertificationType]++
		}
	}

	for _, ct := range certTypes {
		var stats CertTypeStats
		holders := 0
		var daysToExpiry []float64

		for _, user := range users {
			var held []*certification.Certification
			for _, cert := range holdingsByUser[user.ID] {
				if cert.CertificationTypeName == ct.Name {
					held = append(held, cert)
				}
			}
			if len(held) == 0 {
				continue
			}
			holders++
			stats.TotalHeld += len(held)

			latest := held[0]
			for _, cert := range held[1:] {
				if cert.UploadedAt.After(latest.UploadedAt) {
					latest = cert
				}
			}
			switch compliance.Classify(latest, now) {
			case compliance.StatusExpired:
				stats.ExpiredCount++
			case compliance.StatusExpiringSoon:
				stats.ExpiringSoonCount++
			}
			if latest.ExpiresOn != nil && latest.ExpiresOn.After(now) {
				daysToExpiry = append(daysToExpiry, latest.ExpiresOn.Sub(now).Hours()/24)
			}
		}

		if n := needers[ct.Name] - holders; n > 0 {
			stats.MissingCount = n
		}
		if len(daysToExpiry) > 0 {
			var sum float64
			for _, d := range daysToExpiry {
				sum += d
			}
			stats.AverageDaysToExpiration = sum / float64(len(daysToExpiry))
		}
		snap.ByCertificationType[ct.Name] = stats
	}
}
