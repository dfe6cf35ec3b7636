package certification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"rescueops/internal/audit"
	"rescueops/internal/catalog"
	"rescueops/internal/documents"
	"rescueops/internal/roster"
	"rescueops/pkg/platform/sentinel"
)

// Service orchestrates certification uploads. Replacement is deliberately
// two-phase (supersede, then insert): the store exposes no cross-row
// transaction, and a crash between phases leaves the member temporarily
// without an active record, which the compliance engine reports as missing.
type Service struct {
	store     Store
	certTypes catalog.CertificationTypeStore
	users     roster.Store
	docs      documents.Store
	recorder  *audit.Recorder
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(
	store Store,
	certTypes catalog.CertificationTypeStore,
	users roster.Store,
	docs documents.Store,
	recorder *audit.Recorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:     store,
		certTypes: certTypes,
		users:     users,
		docs:      docs,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// UploadRequest carries a new certification holding. Document is optional;
// when present the proof file is stored before the record is written.
type UploadRequest struct {
	UserID                string
	CertificationTypeName string
	ExpiresOn             *time.Time
	DocumentContentType   string
	Document              io.Reader
}

// Upload replaces the member's current certification of the given type.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*Certification, error) {
	if _, err := s.users.Get(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("user %s: %w", req.UserID, err)
	}
	certType, err := s.certTypes.Get(ctx, req.CertificationTypeName)
	if err != nil {
		return nil, fmt.Errorf("certification type %s: %w", req.CertificationTypeName, err)
	}

	now := s.now()
	cert := &Certification{
		ID:                    uuid.NewString(),
		UserID:                req.UserID,
		CertificationTypeName: certType.Name,
		UploadedAt:            now,
	}
	// Expiry only applies to types that expire; a date supplied for a
	// non-expiring type is dropped.
	if certType.Expires && req.ExpiresOn != nil {
		expires := *req.ExpiresOn
		cert.ExpiresOn = &expires
	}

	if req.Document != nil {
		cert.DocumentKey = "certifications/" + cert.ID
		if err := s.docs.Put(ctx, cert.DocumentKey, req.DocumentContentType, req.Document); err != nil {
			return nil, fmt.Errorf("store document: %w", err)
		}
	}

	superseded, err := s.store.Supersede(ctx, req.UserID, certType.Name, now)
	if err != nil {
		return nil, fmt.Errorf("supersede previous certifications: %w", err)
	}
	if err := s.store.Create(ctx, cert); err != nil {
		return nil, fmt.Errorf("create certification: %w", err)
	}

	if superseded > 0 {
		s.recorder.Record(audit.ActionCertificationSuperseded, req.UserID, certType.Name,
			map[string]string{"superseded": fmt.Sprintf("%d", superseded)})
	}
	s.recorder.Record(audit.ActionCertificationUploaded, req.UserID, certType.Name,
		map[string]string{"certification_id": cert.ID})

	s.logger.InfoContext(ctx, "certification uploaded",
		"user_id", req.UserID,
		"certification_type", certType.Name,
		"certification_id", cert.ID,
		"superseded", superseded,
	)
	return cert, nil
}

// Remove soft-deletes a single certification record.
func (s *Service) Remove(ctx context.Context, id string) error {
	cert, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if cert.Deleted() {
		return nil
	}
	now := s.now()
	cert.DeletedAt = &now
	return s.store.Update(ctx, cert)
}

// Document fetches the stored proof file for a certification.
func (s *Service) Document(ctx context.Context, id string) (*documents.Document, error) {
	cert, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert.DocumentKey == "" {
		return nil, fmt.Errorf("certification %s has no document: %w", id, sentinel.ErrNotFound)
	}
	return s.docs.Get(ctx, cert.DocumentKey)
}
