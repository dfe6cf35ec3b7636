package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"rescueops/internal/audit"
	"rescueops/internal/catalog"
	"rescueops/internal/certification"
	"rescueops/internal/platform/logger"
	"rescueops/internal/platform/metrics"
	"rescueops/internal/reminder"
	"rescueops/internal/roster"
)

type AggregatorSuite struct {
	suite.Suite
	ctx        context.Context
	users      *roster.InMemoryStore
	roles      *catalog.InMemoryRoleStore
	tracks     *catalog.InMemoryTrackStore
	certTypes  *catalog.InMemoryCertificationTypeStore
	certs      *certification.InMemoryStore
	reminders  *reminder.InMemoryStore
	store      *InMemoryStore
	aggregator *Aggregator
	now        time.Time
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func (s *AggregatorSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = roster.NewInMemoryStore()
	s.roles = catalog.NewInMemoryRoleStore()
	s.tracks = catalog.NewInMemoryTrackStore()
	s.certTypes = catalog.NewInMemoryCertificationTypeStore()
	s.certs = certification.NewInMemoryStore()
	s.reminders = reminder.NewInMemoryStore()
	s.store = NewInMemoryStore()
	s.now = time.Date(2025, time.June, 15, 6, 0, 0, 0, time.UTC)

	log := logger.New()
	s.aggregator = NewAggregator(AggregatorConfig{
		Users:     s.users,
		Roles:     s.roles,
		Tracks:    s.tracks,
		CertTypes: s.certTypes,
		Certs:     s.certs,
		Reminders: s.reminders,
		Store:     s.store,
		Recorder:  audit.NewRecorder(log, 16),
		Metrics:   metrics.NewWith(prometheus.NewRegistry()),
		Logger:    log,
	})
	s.aggregator.SetClock(func() time.Time { return s.now })
}

func (s *AggregatorSuite) seedCatalog() {
	s.Require().NoError(s.roles.Create(s.ctx, &catalog.Role{
		Name:          "Crew Member",
		AllowedTracks: []string{"BLS"},
	}))
	s.Require().NoError(s.roles.Create(s.ctx, &catalog.Role{Name: "Observer"}))
	s.Require().NoError(s.tracks.Create(s.ctx, &catalog.Track{
		Name:                   "BLS",
		RequiredCertifications: []string{"CPR"},
	}))
	s.Require().NoError(s.certTypes.Create(s.ctx, &catalog.CertificationType{Name: "CPR", Expires: true}))
}

func (s *AggregatorSuite) seedUser(id, role, track string) {
	s.Require().NoError(s.users.Create(s.ctx, &roster.User{
		ID:    id,
		Email: id + "@example.org",
		MembershipRoles: []roster.MembershipRole{
			{RoleName: role, TrackName: track},
		},
	}))
}

func (s *AggregatorSuite) seedCert(id, userID string, expiresOn *time.Time) {
	s.Require().NoError(s.certs.Create(s.ctx, &certification.Certification{
		ID:                    id,
		UserID:                userID,
		CertificationTypeName: "CPR",
		UploadedAt:            s.now.AddDate(0, -6, 0),
		ExpiresOn:             expiresOn,
	}))
}

func (s *AggregatorSuite) TestEmptyOrganizationIsVacuouslyCompliant() {
	s.seedCatalog()

	snap, err := s.aggregator.GenerateAndSave(s.ctx)
	s.Require().NoError(err)

	s.Equal(0, snap.TotalUsers)
	s.Equal(0, snap.CompliantUsers)
	s.Equal(1.0, snap.OverallComplianceRate)
	s.Equal("2025-06-15", snap.Date)
}

func (s *AggregatorSuite) TestOverallAndGroupBreakdowns() {
	s.seedCatalog()
	s.seedUser("user-1", "Crew Member", "BLS")
	s.seedUser("user-2", "Crew Member", "BLS")
	s.seedUser("user-3", "Observer", "")

	// user-1 holds a live CPR, user-2 holds nothing, user-3 needs nothing.
	farOut := s.now.AddDate(1, 0, 0)
	s.seedCert("cert-1", "user-1", &farOut)

	snap, err := s.aggregator.GenerateAndSave(s.ctx)
	s.Require().NoError(err)

	s.Equal(3, snap.TotalUsers)
	s.Equal(2, snap.CompliantUsers)
	s.InDelta(2.0/3.0, snap.OverallComplianceRate, 1e-9)

	crew := snap.ByRole["Crew Member"]
	s.Equal(2, crew.UserCount)
	s.Equal(1, crew.CompliantCount)
	s.InDelta(0.5, crew.ComplianceRate, 1e-9)

	observers := snap.ByRole["Observer"]
	s.Equal(1, observers.UserCount)
	s.Equal(1, observers.CompliantCount)

	bls := snap.ByTrack["BLS"]
	s.Equal(2, bls.UserCount)
	s.Equal(1, bls.CompliantCount)
	s.NotContains(snap.ByTrack, "")
}

func (s *AggregatorSuite) TestCertificationTypeBreakdown() {
	s.seedCatalog()
	s.seedUser("user-1", "Crew Member", "BLS")
	s.seedUser("user-2", "Crew Member", "BLS")
	s.seedUser("user-3", "Crew Member", "BLS")

	// user-1 expires in 30 days (expiring soon), user-2 expired, user-3
	// holds nothing.
	in30 := s.now.AddDate(0, 0, 30)
	past := s.now.AddDate(0, 0, -5)
	s.seedCert("cert-1", "user-1", &in30)
	s.seedCert("cert-2", "user-2", &past)

	snap, err := s.aggregator.GenerateAndSave(s.ctx)
	s.Require().NoError(err)

	cpr := snap.ByCertificationType["CPR"]
	s.Equal(2, cpr.TotalHeld)
	s.Equal(1, cpr.ExpiredCount)
	s.Equal(1, cpr.ExpiringSoonCount)
	s.Equal(1, cpr.MissingCount)
	// Only the unexpired dated holding contributes to the average.
	s.InDelta(30.0, cpr.AverageDaysToExpiration, 1e-9)
}

func (s *AggregatorSuite) TestSameDayRegenerationOverwrites() {
	s.seedCatalog()

	first, err := s.aggregator.GenerateAndSave(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, first.TotalUsers)

	s.seedUser("user-1", "Observer", "")

	second, err := s.aggregator.GenerateAndSave(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.Date, second.Date)

	stored, err := s.store.Get(s.ctx, first.Date)
	s.Require().NoError(err)
	s.Equal(1, stored.TotalUsers)
}

func (s *AggregatorSuite) TestRemindersLastDayWindow() {
	s.seedCatalog()

	recent := &reminder.Reminder{
		ID: "r1", UserID: "user-1", CertificationID: "cert-1",
		Type: reminder.TypeExpired, SentAt: s.now.Add(-2 * time.Hour),
	}
	stale := &reminder.Reminder{
		ID: "r2", UserID: "user-1", CertificationID: "cert-2",
		Type: reminder.TypeMissing, SentAt: s.now.Add(-48 * time.Hour),
	}
	s.Require().NoError(s.reminders.Create(s.ctx, recent))
	s.Require().NoError(s.reminders.Create(s.ctx, stale))

	snap, err := s.aggregator.GenerateAndSave(s.ctx)
	s.Require().NoError(err)

	s.Equal(1, snap.RemindersLastDay[reminder.TypeExpired])
	s.Zero(snap.RemindersLastDay[reminder.TypeMissing])
}
