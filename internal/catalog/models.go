// Package catalog holds the reference data the compliance engine joins
// against: roles, tracks, and the certification type catalog.
package catalog

// Role is an organizational position (e.g. "Crew Member"). AllowedTracks
// lists the track names members holding this role may be assigned to.
type Role struct {
	Name          string   `json:"name"`
	AllowedTracks []string `json:"allowed_tracks"`
}

// Track is a certification curriculum (e.g. "BLS"). RequiredCertifications
// lists the certification type names mandatory for the track.
type Track struct {
	Name                   string   `json:"name"`
	RequiredCertifications []string `json:"required_certifications"`
}

// CertificationType is a catalog entry describing a kind of certification,
// not a member's holding of one.
type CertificationType struct {
	Name    string `json:"name"`
	Expires bool   `json:"expires"`
}
