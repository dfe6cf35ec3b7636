// Package compliance evaluates member certification compliance: which
// certification types a member's assignments require, the status of each
// holding, and the reminder dispatch loop that follows from those statuses.
package compliance

// Status classifies one (member, certification type) pair at a point in time.
type Status string

const (
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
	StatusMissing      Status = "missing"
)
