package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rescueops/internal/certification"
)

func TestClassify(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	holding := func(expiresOn *time.Time) *certification.Certification {
		return &certification.Certification{
			ID:                    "cert-1",
			UserID:                "user-1",
			CertificationTypeName: "CPR",
			UploadedAt:            now.AddDate(-1, 0, 0),
			ExpiresOn:             expiresOn,
		}
	}
	at := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name string
		cert *certification.Certification
		want Status
	}{
		{
			name: "no record is missing",
			cert: nil,
			want: StatusMissing,
		},
		{
			name: "no expiry date is active",
			cert: holding(nil),
			want: StatusActive,
		},
		{
			name: "expiry in the past is expired",
			cert: holding(at(now.AddDate(0, 0, -1))),
			want: StatusExpired,
		},
		{
			name: "expiry exactly now is expired",
			cert: holding(at(now)),
			want: StatusExpired,
		},
		{
			name: "expiry just after now is expiring soon",
			cert: holding(at(now.Add(time.Millisecond))),
			want: StatusExpiringSoon,
		},
		{
			name: "expiry just inside the three month window is expiring soon",
			cert: holding(at(now.AddDate(0, 3, 0).Add(-time.Millisecond))),
			want: StatusExpiringSoon,
		},
		{
			name: "expiry exactly three months out is active",
			cert: holding(at(now.AddDate(0, 3, 0))),
			want: StatusActive,
		},
		{
			name: "expiry four months out is active",
			cert: holding(at(now.AddDate(0, 4, 0))),
			want: StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.cert, now))
		})
	}
}

// Expired takes precedence over expiring soon: a past expiry is always inside
// the three month window, and must still classify as expired.
func TestClassifyExpiredBeatsExpiringSoon(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	cert := &certification.Certification{ID: "c", ExpiresOn: &past}

	assert.Equal(t, StatusExpired, Classify(cert, now))
}
