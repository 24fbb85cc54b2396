// Package user manages temporary users identified by an opaque temp ID.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// User is a temporary user. TempID is the only credential.
type User struct {
	ID             int64     `db:"id" yaml:"id"`
	TempID         string    `db:"temp_id" yaml:"temp_id"`
	CreatedAt      time.Time `db:"created_at" yaml:"created_at"`
	LastAccessedAt time.Time `db:"last_accessed_at" yaml:"last_accessed_at"`
}

// Repository defines operations for managing users.
type Repository interface {
	FindByTempID(ctx context.Context, tempID string) (*User, error)
	ExistsByTempID(ctx context.Context, tempID string) (bool, error)
	Create(ctx context.Context, user *User) error
	UpdateLastAccessedAt(ctx context.Context, tempID string, at time.Time) error
}

// DBRepository implements Repository using sqlx.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindByTempID returns the user with the temp ID, or nil if not found.
func (r *DBRepository) FindByTempID(ctx context.Context, tempID string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u,
		"SELECT id, temp_id, created_at, last_accessed_at FROM users WHERE temp_id = ?", tempID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(users by temp_id) > %w", err)
	}
	return &u, nil
}

// ExistsByTempID reports whether a user with the temp ID exists.
func (r *DBRepository) ExistsByTempID(ctx context.Context, tempID string) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE temp_id = ?", tempID); err != nil {
		return false, fmt.Errorf("db.GetContext(count users) > %w", err)
	}
	return count > 0, nil
}

// Create inserts a new user and sets its ID.
func (r *DBRepository) Create(ctx context.Context, user *User) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO users (temp_id, created_at, last_accessed_at) VALUES (?, ?, ?)",
		user.TempID, user.CreatedAt, user.LastAccessedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert user) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	user.ID = id
	return nil
}

// UpdateLastAccessedAt records an access by the user with the temp ID.
func (r *DBRepository) UpdateLastAccessedAt(ctx context.Context, tempID string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE users SET last_accessed_at = ? WHERE temp_id = ?", at, tempID); err != nil {
		return fmt.Errorf("db.ExecContext(update last_accessed_at) > %w", err)
	}
	return nil
}
