package compliance

import (
	"time"

	"rescueops/internal/catalog"
	"rescueops/internal/certification"
	"rescueops/internal/roster"
)

// Requirement is one required certification type and the member's standing
// against it.
type Requirement struct {
	CertificationType string     `json:"certification_type"`
	Status            Status     `json:"status"`
	CertificationID   string     `json:"certification_id,omitempty"`
	ExpiresOn         *time.Time `json:"expires_on,omitempty"`
}

// Report is a member's full compliance picture at a point in time.
type Report struct {
	UserID       string        `json:"user_id"`
	Compliant    bool          `json:"compliant"`
	Requirements []Requirement `json:"requirements"`
}

// BuildReport evaluates one member against their required certification
// types. A member with no requirements is vacuously compliant. Expiring-soon
// holdings still count as compliant; only missing and expired break
// compliance.
func BuildReport(
	user *roster.User,
	roles []*catalog.Role,
	tracks []*catalog.Track,
	certTypes []*catalog.CertificationType,
	holdings []*certification.Certification,
	now time.Time,
) *Report {
	required := RequiredCertifications(user, roles, tracks, certTypes)

	latest := make(map[string]*certification.Certification)
	for _, cert := range holdings {
		if cert.Deleted() {
			continue
		}
		prev, ok := latest[cert.CertificationTypeName]
		if !ok || cert.UploadedAt.After(prev.UploadedAt) {
			latest[cert.CertificationTypeName] = cert
		}
	}

	report := &Report{UserID: user.ID, Compliant: true}
	for _, ct := range required {
		cert := latest[ct.Name]
		req := Requirement{
			CertificationType: ct.Name,
			Status:            Classify(cert, now),
		}
		if cert != nil {
			req.CertificationID = cert.ID
			req.ExpiresOn = cert.ExpiresOn
		}
		if req.Status == StatusMissing || req.Status == StatusExpired {
			report.Compliant = false
		}
		report.Requirements = append(report.Requirements, req)
	}
	return report
}
