// Package sqlite stores learners and state slots in a local SQLite file
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wordlearner/internal/repository"
)

// SlotRepo implements repository.StateSlot
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo creates a new state slot repository
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// Load returns the payload saved under key
func (r *SlotRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM state_slots WHERE slot_key = ?`, key).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", key, err)
	}

	return []byte(payload), nil
}

// Save overwrites the payload under key
func (r *SlotRepo) Save(ctx context.Context, key string, payload []byte) error {
	query := `
		INSERT INTO state_slots (slot_key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (slot_key)
		DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(payload)); err != nil {
		return fmt.Errorf("save slot %q: %w", key, err)
	}
	return nil
}
