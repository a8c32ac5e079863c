package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wordlearner/internal/repository"
)

// SlotRepo implements repository.StateSlot on a JSONB column
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo creates a new state slot repository
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// Load returns the payload saved under key
func (r *SlotRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	query := `SELECT payload FROM state_slots WHERE slot_key = $1`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", key, err)
	}

	return payload, nil
}

// Save overwrites the payload under key.
// The payload is sent as text: lib/pq would encode []byte as bytea.
func (r *SlotRepo) Save(ctx context.Context, key string, payload []byte) error {
	query := `
		INSERT INTO state_slots (slot_key, payload, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (slot_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(payload)); err != nil {
		return fmt.Errorf("save slot %q: %w", key, err)
	}
	return nil
}
