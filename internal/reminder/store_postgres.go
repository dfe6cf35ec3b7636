package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rescueops/pkg/platform/sentinel"
)

// PostgresStore persists reminders. The unique index on
// (user_id, certification_id, reminder_type) backs the conditional insert in
// Create; duplicate attempts affect zero rows instead of racing.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context) ([]*Reminder, error) {
	query := `
		SELECT id, user_id, certification_id, reminder_type, sent_at
		FROM certification_reminders
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*Reminder
	for rows.Next() {
		var (
			r   Reminder
			typ string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.CertificationID, &typ, &r.SentAt); err != nil {
			return nil, err
		}
		r.Type = Type(typ)
		reminders = append(reminders, &r)
	}
	return reminders, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Reminder, error) {
	var (
		r   Reminder
		typ string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, certification_id, reminder_type, sent_at
		FROM certification_reminders
		WHERE id = $1
	`, id).Scan(&r.ID, &r.UserID, &r.CertificationID, &typ, &r.SentAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reminder: %w", err)
	}
	r.Type = Type(typ)
	return &r, nil
}

func (s *PostgresStore) Create(ctx context.Context, r *Reminder) error {
	query := `
		INSERT INTO certification_reminders (id, user_id, certification_id, reminder_type, sent_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, certification_id, reminder_type) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query,
		r.ID, r.UserID, r.CertificationID, string(r.Type), r.SentAt)
	if err != nil {
		return fmt.Errorf("create reminder: %w", err)
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

func (s *PostgresStore) HasReminderOfType(ctx context.Context, userID, certificationID string, typ Type) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM certification_reminders
			WHERE user_id = $1 AND certification_id = $2 AND reminder_type = $3
		)
	`, userID, certificationID, string(typ)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check reminder: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) CountSentSince(ctx context.Context, since time.Time) (map[Type]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reminder_type, COUNT(*)
		FROM certification_reminders
		WHERE sent_at >= $1
		GROUP BY reminder_type
	`, since)
	if err != nil {
		return nil, fmt.Errorf("count reminders: %w", err)
	}
	defer rows.Close()

	counts := make(map[Type]int)
	for rows.Next() {
		var (
			typ   string
			count int
		)
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, err
		}
		counts[Type(typ)] = count
	}
	return counts, rows.Err()
}
