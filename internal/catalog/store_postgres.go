package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"rescueops/pkg/platform/sentinel"
)

// PostgresRoleStore persists roles; allowed tracks live in a JSONB column.
type PostgresRoleStore struct {
	db *sql.DB
}

func NewPostgresRoleStore(db *sql.DB) *PostgresRoleStore {
	return &PostgresRoleStore{db: db}
}

func (s *PostgresRoleStore) List(ctx context.Context) ([]*Role, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, allowed_tracks FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []*Role
	for rows.Next() {
		var (
			r      Role
			tracks []byte
		)
		if err := rows.Scan(&r.Name, &tracks); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tracks, &r.AllowedTracks); err != nil {
			return nil, fmt.Errorf("unmarshal allowed tracks: %w", err)
		}
		roles = append(roles, &r)
	}
	return roles, rows.Err()
}

func (s *PostgresRoleStore) Get(ctx context.Context, name string) (*Role, error) {
	var (
		r      Role
		tracks []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, allowed_tracks FROM roles WHERE name = $1`, name).
		Scan(&r.Name, &tracks)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	if err := json.Unmarshal(tracks, &r.AllowedTracks); err != nil {
		return nil, fmt.Errorf("unmarshal allowed tracks: %w", err)
	}
	return &r, nil
}

func (s *PostgresRoleStore) Create(ctx context.Context, role *Role) error {
	tracks, err := json.Marshal(role.AllowedTracks)
	if err != nil {
		return err
	}
	return checkedExec(ctx, s.db, sentinel.ErrConflict,
		`INSERT INTO roles (name, allowed_tracks) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		role.Name, tracks)
}

func (s *PostgresRoleStore) Update(ctx context.Context, role *Role) error {
	tracks, err := json.Marshal(role.AllowedTracks)
	if err != nil {
		return err
	}
	return checkedExec(ctx, s.db, sentinel.ErrNotFound,
		`UPDATE roles SET allowed_tracks = $2 WHERE name = $1`,
		role.Name, tracks)
}

// PostgresTrackStore persists tracks; required certification type names live
// in a JSONB column.
type PostgresTrackStore struct {
	db *sql.DB
}

func NewPostgresTrackStore(db *sql.DB) *PostgresTrackStore {
	return &PostgresTrackStore{db: db}
}

func (s *PostgresTrackStore) List(ctx context.Context) ([]*Track, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, required_certifications FROM tracks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		var (
			t    Track
			reqs []byte
		)
		if err := rows.Scan(&t.Name, &reqs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(reqs, &t.RequiredCertifications); err != nil {
			return nil, fmt.Errorf("unmarshal required certifications: %w", err)
		}
		tracks = append(tracks, &t)
	}
	return tracks, rows.Err()
}

func (s *PostgresTrackStore) Get(ctx context.Context, name string) (*Track, error) {
	var (
		t    Track
		reqs []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, required_certifications FROM tracks WHERE name = $1`, name).
		Scan(&t.Name, &reqs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get track: %w", err)
	}
	if err := json.Unmarshal(reqs, &t.RequiredCertifications); err != nil {
		return nil, fmt.Errorf("unmarshal required certifications: %w", err)
	}
	return &t, nil
}

func (s *PostgresTrackStore) Create(ctx context.Context, track *Track) error {
	reqs, err := json.Marshal(track.RequiredCertifications)
	if err != nil {
		return err
	}
	return checkedExec(ctx, s.db, sentinel.ErrConflict,
		`INSERT INTO tracks (name, required_certifications) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		track.Name, reqs)
}

func (s *PostgresTrackStore) Update(ctx context.Context, track *Track) error {
	reqs, err := json.Marshal(track.RequiredCertifications)
	if err != nil {
		return err
	}
	return checkedExec(ctx, s.db, sentinel.ErrNotFound,
		`UPDATE tracks SET required_certifications = $2 WHERE name = $1`,
		track.Name, reqs)
}

// PostgresCertificationTypeStore persists the certification type catalog.
type PostgresCertificationTypeStore struct {
	db *sql.DB
}

func NewPostgresCertificationTypeStore(db *sql.DB) *PostgresCertificationTypeStore {
	return &PostgresCertificationTypeStore{db: db}
}

func (s *PostgresCertificationTypeStore) List(ctx context.Context) ([]*CertificationType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, expires FROM certification_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list certification types: %w", err)
	}
	defer rows.Close()

	var types []*CertificationType
	for rows.Next() {
		var ct CertificationType
		if err := rows.Scan(&ct.Name, &ct.Expires); err != nil {
			return nil, err
		}
		types = append(types, &ct)
	}
	return types, rows.Err()
}

func (s *PostgresCertificationTypeStore) Get(ctx context.Context, name string) (*CertificationType, error) {
	var ct CertificationType
	err := s.db.QueryRowContext(ctx,
		`SELECT name, expires FROM certification_types WHERE name = $1`, name).
		Scan(&ct.Name, &ct.Expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get certification type: %w", err)
	}
	return &ct, nil
}

func (s *PostgresCertificationTypeStore) Create(ctx context.Context, ct *CertificationType) error {
	return checkedExec(ctx, s.db, sentinel.ErrConflict,
		`INSERT INTO certification_types (name, expires) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		ct.Name, ct.Expires)
}

func (s *PostgresCertificationTypeStore) Update(ctx context.Context, ct *CertificationType) error {
	return checkedExec(ctx, s.db, sentinel.ErrNotFound,
		`UPDATE certification_types SET expires = $2 WHERE name = $1`,
		ct.Name, ct.Expires)
}

// checkedExec runs a statement that should affect exactly one row and maps an
// unaffected execution to the given sentinel error.
func checkedExec(ctx context.Context, db *sql.DB, onZero error, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return onZero
	}
	return nil
}
