package database

import (
	"context"
	"fmt"
	"time"
)

// CreateUser inserts a new user record.
func (s *Session) CreateUser(ctx context.Context, username string) (*User, error) {
	now := time.Now()
	result, err := s.Exec(ctx, `
		INSERT INTO users (username, created_at)
		VALUES (?, ?)
	`, username, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	return &User{
		ID:        id,
		Username:  username,
		Balance:   0,
		CreatedAt: now,
	}, nil
}

// ListActiveUsers fetches one page of users that have not been soft deleted.
func (s *Session) ListActiveUsers(ctx context.Context, limit, offset int) ([]*User, error) {
	rows, err := s.Query(ctx, `
		SELECT id, username, balance, created_at
		FROM users WHERE deleted_at IS NULL
		ORDER BY id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Balance, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

// CountActiveUsers returns the total number of non-deleted users, used by
// handlers to build the pagination envelope.
func (s *Session) CountActiveUsers(ctx context.Context) (int, error) {
	var count int
	err := s.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE deleted_at IS NULL").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// SoftDeleteUser marks a user as deleted. The row stays; every query filters
// on deleted_at IS NULL, so the user is unobservable afterward. Returns
// ErrNotFound for an unknown or already-deleted id.
func (s *Session) SoftDeleteUser(ctx context.Context, userID int64) error {
	result, err := s.Exec(ctx, `
		UPDATE users SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
