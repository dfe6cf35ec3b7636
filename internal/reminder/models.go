package reminder

import "time"

// Type says why a reminder was sent.
type Type string

const (
	TypeExpired      Type = "expired"
	TypeExpiringSoon Type = "expiring_soon"
	TypeMissing      Type = "missing"
)

// Reminder records that a notification of a given type was sent for a given
// (user, certification) pair. (UserID, CertificationID, Type) is the natural
// dedup key; for missing-certification reminders CertificationID is the
// synthetic "missing-<certTypeName>" since no real holding exists.
type Reminder struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CertificationID string    `json:"certification_id"`
	Type            Type      `json:"reminder_type"`
	SentAt          time.Time `json:"sent_at"`
}

// MissingCertificationID builds the synthetic certification ID used to dedup
// missing-certification reminders.
func MissingCertificationID(certTypeName string) string {
	return "missing-" + certTypeName
}
