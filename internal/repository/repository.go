package repository

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by StateSlot.Load when nothing was saved under the key yet
var ErrSlotNotFound = errors.New("state slot not found")

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
	AuthorizeUser(ctx context.Context, userID int64) error
	EnsureUserExists(ctx context.Context, userID int64) error
}

// StateSlot is a durable key-value slot holding one serialized deck per key.
// Save overwrites the whole payload.
type StateSlot interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}
