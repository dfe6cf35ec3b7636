package compliance

import (
	"rescueops/internal/catalog"
	"rescueops/internal/roster"
)

// RequiredCertifications resolves the certification types a member must hold:
// the member's roles, to the tracks those roles allow, to the certification
// types those tracks require. Pure; runs entirely off the supplied lists, so
// callers load them fresh per check cycle.
//
// Deliberately, a member is credited with every track their roles allow, not
// only the track named in their specific assignment. A role allowing tracks
// "BLS" and "ALS" requires both tracks' certifications even from a member
// assigned only to "BLS". This matches the behavior the organization has
// operated under; tightening it to assignment-level tracks is an open product
// decision (see DESIGN.md).
//
// The result preserves the order of certTypes, which keeps reminder
// processing and logs deterministic. An empty result means the member is
// vacuously compliant.
func RequiredCertifications(
	user *roster.User,
	roles []*catalog.Role,
	tracks []*catalog.Track,
	certTypes []*catalog.CertificationType,
) []*catalog.CertificationType {
	heldRoles := make(map[string]bool, len(user.MembershipRoles))
	for _, mr := range user.MembershipRoles {
		heldRoles[mr.RoleName] = true
	}

	allowedTracks := make(map[string]bool)
	for _, role := range roles {
		if !heldRoles[role.Name] {
			continue
		}
		for _, trackName := range role.AllowedTracks {
			allowedTracks[trackName] = true
		}
	}

	requiredNames := make(map[string]bool)
	for _, track := range tracks {
		if !allowedTracks[track.Name] {
			continue
		}
		for _, certName := range track.RequiredCertifications {
			requiredNames[certName] = true
		}
	}

	var required []*catalog.CertificationType
	for _, ct := range certTypes {
		if requiredNames[ct.Name] {
			required = append(required, ct)
		}
	}
	return required
}
