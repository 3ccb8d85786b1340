package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// CreateUser inserts a new account.
func (s *Store) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, display_name, created_at)
		VALUES (?, ?, ?, ?)
	`, user.Email, user.PasswordHash, user.DisplayName, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("user %s: %w", user.Email, domain.ErrAlreadyExists)
		}
		return domain.User{}, fmt.Errorf("creating user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, fmt.Errorf("reading user id: %w", err)
	}
	user.ID = id
	return user, nil
}

// GetUserByEmail returns the account with the given email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, display_name, created_at, last_login
		FROM users WHERE email = ?
	`, email)
	return scanUser(row)
}

// GetUserByID returns the account with the given ID.
func (s *Store) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, display_name, created_at, last_login
		FROM users WHERE id = ?
	`, id)
	return scanUser(row)
}

// TouchLastLogin records a successful login time.
func (s *Store) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET last_login = ? WHERE id = ?", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	var lastLogin sql.NullTime

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName,
		&u.CreatedAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("scanning user: %w", err)
	}

	if lastLogin.Valid {
		t := lastLogin.Time.UTC()
		u.LastLogin = &t
	}
	return u, nil
}
