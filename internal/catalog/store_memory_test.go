package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"rescueops/pkg/platform/sentinel"
)

type CatalogStoreSuite struct {
	suite.Suite
	ctx context.Context
}

func TestCatalogStoreSuite(t *testing.T) {
	suite.Run(t, new(CatalogStoreSuite))
}

func (s *CatalogStoreSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *CatalogStoreSuite) TestRoleStore() {
	store := NewInMemoryRoleStore()

	s.Run("creates and finds role by name", func() {
		s.Require().NoError(store.Create(s.ctx, &Role{
			Name:          "Crew Member",
			AllowedTracks: []string{"BLS", "ALS"},
		}))

		found, err := store.Get(s.ctx, "Crew Member")
		s.Require().NoError(err)
		s.Equal([]string{"BLS", "ALS"}, found.AllowedTracks)
	})

	s.Run("rejects duplicate name", func() {
		err := store.Create(s.ctx, &Role{Name: "Crew Member"})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("update replaces allowed tracks", func() {
		s.Require().NoError(store.Update(s.ctx, &Role{
			Name:          "Crew Member",
			AllowedTracks: []string{"BLS"},
		}))

		found, err := store.Get(s.ctx, "Crew Member")
		s.Require().NoError(err)
		s.Equal([]string{"BLS"}, found.AllowedTracks)
	})

	s.Run("update of unknown role returns ErrNotFound", func() {
		err := store.Update(s.ctx, &Role{Name: "Ghost"})
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("lists roles sorted by name", func() {
		s.Require().NoError(store.Create(s.ctx, &Role{Name: "Dispatcher"}))

		roles, err := store.List(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(roles, 2)
		s.Equal("Crew Member", roles[0].Name)
		s.Equal("Dispatcher", roles[1].Name)
	})
}

func (s *CatalogStoreSuite) TestTrackStore() {
	store := NewInMemoryTrackStore()

	s.Run("creates and finds track by name", func() {
		s.Require().NoError(store.Create(s.ctx, &Track{
			Name:                   "BLS",
			RequiredCertifications: []string{"CPR", "EMT-B"},
		}))

		found, err := store.Get(s.ctx, "BLS")
		s.Require().NoError(err)
		s.Equal([]string{"CPR", "EMT-B"}, found.RequiredCertifications)
	})

	s.Run("returned slice is isolated from the store", func() {
		found, err := store.Get(s.ctx, "BLS")
		s.Require().NoError(err)
		found.RequiredCertifications[0] = "Tampered"

		again, err := store.Get(s.ctx, "BLS")
		s.Require().NoError(err)
		s.Equal("CPR", again.RequiredCertifications[0])
	})
}

func (s *CatalogStoreSuite) TestCertificationTypeStore() {
	store := NewInMemoryCertificationTypeStore()

	s.Run("creates and finds type by name", func() {
		s.Require().NoError(store.Create(s.ctx, &CertificationType{Name: "CPR", Expires: true}))

		found, err := store.Get(s.ctx, "CPR")
		s.Require().NoError(err)
		s.True(found.Expires)
	})

	s.Run("update flips the expires flag", func() {
		s.Require().NoError(store.Update(s.ctx, &CertificationType{Name: "CPR", Expires: false}))

		found, err := store.Get(s.ctx, "CPR")
		s.Require().NoError(err)
		s.False(found.Expires)
	})

	s.Run("returns ErrNotFound for unknown type", func() {
		_, err := store.Get(s.ctx, "Juggling")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
