package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"rescueops/pkg/platform/sentinel"
)

// PostgresStore persists snapshots. Breakdowns live in JSONB columns; the
// date key is the primary key and Save upserts against it, giving the
// last-write-wins semantics same-day reruns need.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, snap *Snapshot) error {
	byRole, err := json.Marshal(snap.ByRole)
	if err != nil {
		return fmt.Errorf("marshal role breakdown: %w", err)
	}
	byTrack, err := json.Marshal(snap.ByTrack)
	if err != nil {
		return fmt.Errorf("marshal track breakdown: %w", err)
	}
	byCertType, err := json.Marshal(snap.ByCertificationType)
	if err != nil {
		return fmt.Errorf("marshal certification type breakdown: %w", err)
	}
	remindersJSON, err := json.Marshal(snap.RemindersLastDay)
	if err != nil {
		return fmt.Errorf("marshal reminder counts: %w", err)
	}

	query := `
		INSERT INTO certification_snapshots
			(snapshot_date, total_users, compliant_users, overall_compliance_rate,
			 by_role, by_track, by_certification_type, reminders_last_day, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (snapshot_date) DO UPDATE SET
			total_users = EXCLUDED.total_users,
			compliant_users = EXCLUDED.compliant_users,
			overall_compliance_rate = EXCLUDED.overall_compliance_rate,
			by_role = EXCLUDED.by_role,
			by_track = EXCLUDED.by_track,
			by_certification_type = EXCLUDED.by_certification_type,
			reminders_last_day = EXCLUDED.reminders_last_day,
			generated_at = EXCLUDED.generated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		snap.Date, snap.TotalUsers, snap.CompliantUsers, snap.OverallComplianceRate,
		byRole, byTrack, byCertType, remindersJSON, snap.GeneratedAt)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

const snapshotColumns = `snapshot_date, total_users, compliant_users, overall_compliance_rate,
	by_role, by_track, by_certification_type, reminders_last_day, generated_at`

func (s *PostgresStore) Get(ctx context.Context, date string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+` FROM certification_snapshots WHERE snapshot_date = $1`, date)
	return scanSnapshot(row)
}

func (s *PostgresStore) Latest(ctx context.Context) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+` FROM certification_snapshots ORDER BY snapshot_date DESC LIMIT 1`)
	return scanSnapshot(row)
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var (
		snap          Snapshot
		byRole        []byte
		byTrack       []byte
		byCertType    []byte
		remindersJSON []byte
	)
	err := row.Scan(&snap.Date, &snap.TotalUsers, &snap.CompliantUsers, &snap.OverallComplianceRate,
		&byRole, &byTrack, &byCertType, &remindersJSON, &snap.GeneratedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	if err := json.Unmarshal(byRole, &snap.ByRole); err != nil {
		return nil, fmt.Errorf("unmarshal role breakdown: %w", err)
	}
	if err := json.Unmarshal(byTrack, &snap.ByTrack); err != nil {
		return nil, fmt.Errorf("unmarshal track breakdown: %w", err)
	}
	if err := json.Unmarshal(byCertType, &snap.ByCertificationType); err != nil {
		return nil, fmt.Errorf("unmarshal certification type breakdown: %w", err)
	}
	if err := json.Unmarshal(remindersJSON, &snap.RemindersLastDay); err != nil {
		return nil, fmt.Errorf("unmarshal reminder counts: %w", err)
	}
	return &snap, nil
}
