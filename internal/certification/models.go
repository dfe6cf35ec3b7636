package certification

import "time"

// Certification is a member's holding of a certification type: the record of
// an uploaded proof document, with optional expiry. At most one non-deleted
// certification per (user, type) should exist logically; replacement
// soft-deletes prior records before inserting the new one (see Store.Supersede).
type Certification struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"user_id"`
	CertificationTypeName string     `json:"certification_type_name"`
	UploadedAt            time.Time  `json:"uploaded_at"`
	ExpiresOn             *time.Time `json:"expires_on,omitempty"`
	DeletedAt             *time.Time `json:"deleted_at,omitempty"`
	DocumentKey           string     `json:"document_key,omitempty"`
}

// Deleted reports whether the record has been soft-deleted.
func (c *Certification) Deleted() bool {
	return c.DeletedAt != nil
}
