// Package snapshot materializes daily compliance rollups so the portal's
// dashboard reads a precomputed record instead of re-running the evaluation.
package snapshot

import (
	"time"

	"rescueops/internal/reminder"
)

// GroupStats is the compliance breakdown for one role or track.
type GroupStats struct {
	UserCount      int     `json:"user_count"`
	CompliantCount int     `json:"compliant_count"`
	ComplianceRate float64 `json:"compliance_rate"`
}

// CertTypeStats describes the organization's standing for one certification
// type. MissingCount is distinct members who need the type minus distinct
// members holding any live record of it. AverageDaysToExpiration averages
// over currently unexpired, dated holdings only.
type CertTypeStats struct {
	TotalHeld               int     `json:"total_held"`
	ExpiredCount            int     `json:"expired_count"`
	ExpiringSoonCount       int     `json:"expiring_soon_count"`
	MissingCount            int     `json:"missing_count"`
	AverageDaysToExpiration float64 `json:"average_days_to_expiration"`
}

// Snapshot is one day's compliance rollup, keyed by date. Re-generating on
// the same day overwrites: last write wins, never additive.
type Snapshot struct {
	Date                  string                    `json:"snapshot_date"`
	TotalUsers            int                       `json:"total_users"`
	CompliantUsers        int                       `json:"compliant_users"`
	OverallComplianceRate float64                   `json:"overall_compliance_rate"`
	ByRole                map[string]GroupStats     `json:"by_role"`
	ByTrack               map[string]GroupStats     `json:"by_track"`
	ByCertificationType   map[string]CertTypeStats  `json:"by_certification_type"`
	RemindersLastDay      map[reminder.Type]int     `json:"reminders_last_day"`
	GeneratedAt           time.Time                 `json:"generated_at"`
}

// DateKey formats a time as the snapshot's calendar-date key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
