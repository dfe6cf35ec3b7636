package certification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"rescueops/pkg/platform/sentinel"
)

type CertificationStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	now   time.Time
}

func TestCertificationStoreSuite(t *testing.T) {
	suite.Run(t, new(CertificationStoreSuite))
}

func (s *CertificationStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
	s.now = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)
}

func (s *CertificationStoreSuite) newCert(id, userID, typeName string, uploadedAt time.Time) *Certification {
	return &Certification{
		ID:                    id,
		UserID:                userID,
		CertificationTypeName: typeName,
		UploadedAt:            uploadedAt,
	}
}

func (s *CertificationStoreSuite) TestCreateAndLookup() {
	s.Run("creates and finds certification", func() {
		cert := s.newCert("c1", "user-1", "CPR", s.now)
		s.Require().NoError(s.store.Create(s.ctx, cert))

		found, err := s.store.Get(s.ctx, "c1")
		s.Require().NoError(err)
		s.Equal("CPR", found.CertificationTypeName)
	})

	s.Run("rejects duplicate ID", func() {
		s.Require().ErrorIs(
			s.store.Create(s.ctx, s.newCert("c1", "user-2", "CPR", s.now)),
			sentinel.ErrConflict,
		)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.Get(s.ctx, "nope")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *CertificationStoreSuite) TestListByUser() {
	s.Require().NoError(s.store.Create(s.ctx, s.newCert("c-old", "user-1", "CPR", s.now.AddDate(-1, 0, 0))))
	s.Require().NoError(s.store.Create(s.ctx, s.newCert("c-new", "user-1", "CPR", s.now)))
	s.Require().NoError(s.store.Create(s.ctx, s.newCert("c-other", "user-2", "CPR", s.now)))

	deleted := s.newCert("c-gone", "user-1", "EMT-B", s.now)
	deletedAt := s.now.AddDate(0, -1, 0)
	deleted.DeletedAt = &deletedAt
	s.Require().NoError(s.store.Create(s.ctx, deleted))

	certs, err := s.store.ListByUser(s.ctx, "user-1")
	s.Require().NoError(err)

	s.Run("excludes other users and deleted records", func() {
		s.Len(certs, 2)
	})

	s.Run("orders newest upload first", func() {
		s.Equal("c-new", certs[0].ID)
		s.Equal("c-old", certs[1].ID)
	})
}

func (s *CertificationStoreSuite) TestSupersede() {
	s.Require().NoError(s.store.Create(s.ctx, s.newCert("c1", "user-1", "CPR", s.now.AddDate(-2, 0, 0))))
	s.Require().NoError(s.store.Create(s.ctx, s.newCert("c2", "user-1", "CPR", s.now.AddDate(-1, 0, 0))))
	s.Require().NoError(s.store.Create(s.ctx, s.newCert("c3", "user-1", "EMT-B", s.now)))
	s.Require().NoError(s.store.Create(s.ctx, s.newCert("c4", "user-2", "CPR", s.now)))

	marked, err := s.store.Supersede(s.ctx, "user-1", "CPR", s.now)
	s.Require().NoError(err)

	s.Run("marks every live record of the type for the user", func() {
		s.Equal(2, marked)
		remaining, err := s.store.ListByUser(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Len(remaining, 1)
		s.Equal("c3", remaining[0].ID)
	})

	s.Run("does not touch other users or types", func() {
		other, err := s.store.ListByUser(s.ctx, "user-2")
		s.Require().NoError(err)
		s.Len(other, 1)
	})

	s.Run("second supersede is a no-op", func() {
		marked, err := s.store.Supersede(s.ctx, "user-1", "CPR", s.now)
		s.Require().NoError(err)
		s.Zero(marked)
	})
}

func (s *CertificationStoreSuite) TestCloneIsolation() {
	cert := s.newCert("c1", "user-1", "CPR", s.now)
	expiry := s.now.AddDate(1, 0, 0)
	cert.ExpiresOn = &expiry
	s.Require().NoError(s.store.Create(s.ctx, cert))

	// Mutating the returned record must not leak into the store.
	found, err := s.store.Get(s.ctx, "c1")
	s.Require().NoError(err)
	*found.ExpiresOn = s.now.AddDate(-1, 0, 0)
	found.CertificationTypeName = "EMT-B"

	again, err := s.store.Get(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal("CPR", again.CertificationTypeName)
	s.True(again.ExpiresOn.Equal(expiry))
}
