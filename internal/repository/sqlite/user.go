package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// IsAuthorized checks if the Telegram user may use the bot
func (r *UserRepo) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	var authorized bool
	err := r.db.QueryRowContext(ctx, `SELECT authorized FROM learners WHERE user_id = ?`, userID).Scan(&authorized)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check learner authorization: %w", err)
	}

	return authorized, nil
}

// AuthorizeUser marks the learner as authorized
func (r *UserRepo) AuthorizeUser(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO learners (user_id, authorized, authorized_at)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = 1, authorized_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("authorize learner: %w", err)
	}
	return nil
}

// EnsureUserExists creates an unauthorized learner row if missing
func (r *UserRepo) EnsureUserExists(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO learners (user_id, authorized) VALUES (?, 0)`, userID); err != nil {
		return fmt.Errorf("ensure learner: %w", err)
	}
	return nil
}
