package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PostgresStore persists audit events. Detail is a JSONB document; rows are
// append-only and never updated.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	detail, err := json.Marshal(event.Detail)
	if err != nil {
		return fmt.Errorf("marshal audit detail: %w", err)
	}
	query := `
		INSERT INTO audit_events (id, action, user_id, subject, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		event.ID, string(event.Action), nullIfEmpty(event.UserID), event.Subject, detail, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListSince(ctx context.Context, since time.Time) ([]Event, error) {
	query := `
		SELECT id, action, user_id, subject, detail, created_at
		FROM audit_events
		WHERE created_at >= $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e      Event
			action string
			userID sql.NullString
			detail []byte
		)
		if err := rows.Scan(&e.ID, &action, &userID, &e.Subject, &detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Action = Action(action)
		e.UserID = userID.String
		if err := json.Unmarshal(detail, &e.Detail); err != nil {
			return nil, fmt.Errorf("unmarshal audit detail: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
