package certification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rescueops/pkg/platform/sentinel"
)

// PostgresStore persists certification holdings. The (user_id, uploaded_at)
// index serves the per-member listing the compliance engine and the roster
// screens both use.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const certColumns = `id, user_id, certification_type_name, uploaded_at, expires_on, deleted_at, document_key`

func (s *PostgresStore) List(ctx context.Context) ([]*Certification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+certColumns+` FROM certifications ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}
	defer rows.Close()
	return collectCerts(rows)
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Certification, error) {
	c, err := scanCert(s.db.QueryRowContext(ctx,
		`SELECT `+certColumns+` FROM certifications WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return c, err
}

func (s *PostgresStore) Create(ctx context.Context, cert *Certification) error {
	query := `
		INSERT INTO certifications (id, user_id, certification_type_name, uploaded_at, expires_on, deleted_at, document_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query,
		cert.ID, cert.UserID, cert.CertificationTypeName, cert.UploadedAt,
		cert.ExpiresOn, cert.DeletedAt, nullIfEmpty(cert.DocumentKey))
	if err != nil {
		return fmt.Errorf("create certification: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, cert *Certification) error {
	query := `
		UPDATE certifications
		SET certification_type_name = $2, uploaded_at = $3, expires_on = $4, deleted_at = $5, document_key = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		cert.ID, cert.CertificationTypeName, cert.UploadedAt,
		cert.ExpiresOn, cert.DeletedAt, nullIfEmpty(cert.DocumentKey))
	if err != nil {
		return fmt.Errorf("update certification: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]*Certification, error) {
	query := `
		SELECT ` + certColumns + `
		FROM certifications
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY uploaded_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list certifications by user: %w", err)
	}
	defer rows.Close()
	return collectCerts(rows)
}

func (s *PostgresStore) Supersede(ctx context.Context, userID, certTypeName string, deletedAt time.Time) (int, error) {
	query := `
		UPDATE certifications
		SET deleted_at = $3
		WHERE user_id = $1 AND certification_type_name = $2 AND deleted_at IS NULL
	`
	res, err := s.db.ExecContext(ctx, query, userID, certTypeName, deletedAt)
	if err != nil {
		return 0, fmt.Errorf("supersede certifications: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCert(row rowScanner) (*Certification, error) {
	var (
		c   Certification
		doc sql.NullString
	)
	err := row.Scan(&c.ID, &c.UserID, &c.CertificationTypeName, &c.UploadedAt,
		&c.ExpiresOn, &c.DeletedAt, &doc)
	if err != nil {
		return nil, err
	}
	c.DocumentKey = doc.String
	return &c, nil
}

func collectCerts(rows *sql.Rows) ([]*Certification, error) {
	var certs []*Certification
	for rows.Next() {
		c, err := scanCert(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
