package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"rescueops/pkg/platform/sentinel"
)

// PostgresStore persists users. Membership roles are stored as a JSONB
// document; they are always read and written as a whole with the user.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context) ([]*User, error) {
	query := `
		SELECT id, first_name, last_name, email, membership_roles, created_at, updated_at
		FROM users
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, first_name, last_name, email, membership_roles, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return u, err
}

func (s *PostgresStore) Create(ctx context.Context, user *User) error {
	roles, err := json.Marshal(user.MembershipRoles)
	if err != nil {
		return fmt.Errorf("marshal membership roles: %w", err)
	}
	query := `
		INSERT INTO users (id, first_name, last_name, email, membership_roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, roles, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
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

func (s *PostgresStore) Update(ctx context.Context, user *User) error {
	roles, err := json.Marshal(user.MembershipRoles)
	if err != nil {
		return fmt.Errorf("marshal membership roles: %w", err)
	}
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, membership_roles = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, roles, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var (
		u     User
		roles []byte
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &roles, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(roles, &u.MembershipRoles); err != nil {
		return nil, fmt.Errorf("unmarshal membership roles: %w", err)
	}
	return &u, nil
}
