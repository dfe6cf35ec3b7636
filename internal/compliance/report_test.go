package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rescueops/internal/certification"
	"rescueops/internal/roster"
)

func TestBuildReport(t *testing.T) {
	roles, tracks, certTypes := testCatalog()
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	user := memberWith(roster.MembershipRole{RoleName: "Crew Member", TrackName: "BLS"})

	hold := func(id, typeName string, uploadedAt time.Time, expiresOn, deletedAt *time.Time) *certification.Certification {
		return &certification.Certification{
			ID:                    id,
			UserID:                user.ID,
			CertificationTypeName: typeName,
			UploadedAt:            uploadedAt,
			ExpiresOn:             expiresOn,
			DeletedAt:             deletedAt,
		}
	}
	at := func(t time.Time) *time.Time { return &t }

	t.Run("expiring soon still counts as compliant", func(t *testing.T) {
		soon := now.AddDate(0, 1, 0)
		later := now.AddDate(1, 0, 0)
		holdings := []*certification.Certification{
			hold("c1", "CPR", now.AddDate(0, -6, 0), at(soon), nil),
			hold("c2", "EMT-B", now.AddDate(0, -6, 0), at(later), nil),
			hold("c3", "Paramedic", now.AddDate(0, -6, 0), nil, nil),
		}

		report := BuildReport(user, roles, tracks, certTypes, holdings, now)

		assert.True(t, report.Compliant)
		require.Len(t, report.Requirements, 3)
		assert.Equal(t, StatusExpiringSoon, report.Requirements[0].Status)
		assert.Equal(t, "c1", report.Requirements[0].CertificationID)
	})

	t.Run("missing or expired breaks compliance", func(t *testing.T) {
		expired := now.AddDate(0, -1, 0)
		holdings := []*certification.Certification{
			hold("c1", "CPR", now.AddDate(0, -6, 0), at(expired), nil),
		}

		report := BuildReport(user, roles, tracks, certTypes, holdings, now)

		assert.False(t, report.Compliant)
		require.Len(t, report.Requirements, 3)
		assert.Equal(t, StatusExpired, report.Requirements[0].Status)
		assert.Equal(t, StatusMissing, report.Requirements[1].Status)
		assert.Equal(t, StatusMissing, report.Requirements[2].Status)
	})

	t.Run("soft deleted holdings are invisible", func(t *testing.T) {
		deleted := now.AddDate(0, -1, 0)
		holdings := []*certification.Certification{
			hold("c1", "CPR", now.AddDate(0, -6, 0), nil, at(deleted)),
		}

		report := BuildReport(user, roles, tracks, certTypes, holdings, now)

		assert.False(t, report.Compliant)
		assert.Equal(t, StatusMissing, report.Requirements[0].Status)
	})

	t.Run("latest upload wins over an older live record", func(t *testing.T) {
		oldExpiry := now.AddDate(0, -2, 0)
		newExpiry := now.AddDate(1, 0, 0)
		holdings := []*certification.Certification{
			hold("c-old", "CPR", now.AddDate(-2, 0, 0), at(oldExpiry), nil),
			hold("c-new", "CPR", now.AddDate(0, -1, 0), at(newExpiry), nil),
			hold("c2", "EMT-B", now.AddDate(0, -1, 0), nil, nil),
			hold("c3", "Paramedic", now.AddDate(0, -1, 0), nil, nil),
		}

		report := BuildReport(user, roles, tracks, certTypes, holdings, now)

		assert.True(t, report.Compliant)
		assert.Equal(t, "c-new", report.Requirements[0].CertificationID)
		assert.Equal(t, StatusActive, report.Requirements[0].Status)
	})

	t.Run("no requirements is vacuously compliant", func(t *testing.T) {
		idle := memberWith()

		report := BuildReport(idle, roles, tracks, certTypes, nil, now)

		assert.True(t, report.Compliant)
		assert.Empty(t, report.Requirements)
	})
}
