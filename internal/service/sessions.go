package service

import (
	"context"
	"fmt"
	"sync"
)

// Sessions keeps one Session per learner, opened on first use
type Sessions struct {
	store      *WordStore
	slotPrefix string

	sessions map[int64]*Session
	mu       sync.RWMutex
}

// NewSessions creates a new session registry
func NewSessions(store *WordStore, slotPrefix string) *Sessions {
	return &Sessions{
		store:      store,
		slotPrefix: slotPrefix,
		sessions:   make(map[int64]*Session),
	}
}

// SlotKey returns the slot name of a learner's deck
func SlotKey(prefix string, ownerID int64) string {
	return fmt.Sprintf("%s:%d", prefix, ownerID)
}

// Get returns the learner's session, loading it from the slot the first time
func (r *Sessions) Get(ctx context.Context, ownerID int64) *Session {
	r.mu.RLock()
	session, exists := r.sessions[ownerID]
	r.mu.RUnlock()
	if exists {
		return session
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if session, exists := r.sessions[ownerID]; exists {
		return session
	}

	session = r.store.OpenSession(ctx, SlotKey(r.slotPrefix, ownerID))
	r.sessions[ownerID] = session
	return session
}

// Delimiter returns the field separator imports are split on
func (r *Sessions) Delimiter() string {
	return r.store.delimiter
}
