package compliance

import (
	"time"

	"rescueops/internal/certification"
)

// expiringSoonMonths is how far ahead of expiry a certification counts as
// expiring soon. Three calendar months is the organization's renewal-notice
// policy and is asserted in regulatory review; do not make it configurable.
const expiringSoonMonths = 3

// Classify maps a certification holding (nil for "no record of this type")
// and the current time to a compliance status. Precedence is fixed:
//
//  1. nil certification: missing
//  2. no expiry date: active (non-expiring certifications stay valid)
//  3. expiry at or before now: expired
//  4. expiry within the next three calendar months: expiring soon
//  5. otherwise: active
func Classify(cert *certification.Certification, now time.Time) Status {
	if cert == nil {
		return StatusMissing
	}
	if cert.ExpiresOn == nil {
		return StatusActive
	}
	expires := *cert.ExpiresOn
	if !expires.After(now) {
		return StatusExpired
	}
	if expires.Before(now.AddDate(0, expiringSoonMonths, 0)) {
		return StatusExpiringSoon
	}
	return StatusActive
}
