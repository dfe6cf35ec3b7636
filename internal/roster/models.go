package roster

import "time"

// MembershipRole is one position a member holds: a role, the track they are
// assigned under, and whether they are still precepting (supervised).
type MembershipRole struct {
	RoleName   string `json:"role_name"`
	TrackName  string `json:"track_name"`
	Precepting bool   `json:"precepting"`
}

// User is a member of the organization. Members are never hard-deleted;
// roster removal is handled by clearing membership roles.
type User struct {
	ID              string           `json:"id"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Email           string           `json:"email"`
	MembershipRoles []MembershipRole `json:"membership_roles"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// FullName is used in notification templates.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user holds the named role in any assignment.
func (u *User) HasRole(roleName string) bool {
	for _, mr := range u.MembershipRoles {
		if mr.RoleName == roleName {
			return true
		}
	}
	return false
}
