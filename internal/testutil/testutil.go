package testutil

import (
	"context"
	"sync"
	"time"

	"wordlearner/internal/domain"
	"wordlearner/internal/repository"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test word record
func NewTestWord(id, term, translation string, status domain.Status) domain.WordRecord {
	return domain.WordRecord{
		ID:          id,
		Term:        term,
		Translation: translation,
		Status:      status,
		CreatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// NewTestState creates a deck holding words, native side first
func NewTestState(words ...domain.WordRecord) domain.AppState {
	state := domain.NewAppState()
	state.Words = words
	return state
}

// MemorySlot is an in-memory StateSlot
type MemorySlot struct {
	mu    sync.Mutex
	data  map[string][]byte
	saves int
}

// NewMemorySlot creates an empty in-memory slot
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: make(map[string][]byte)}
}

func (s *MemorySlot) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, ok := s.data[key]
	if !ok {
		return nil, repository.ErrSlotNotFound
	}
	return append([]byte(nil), payload...), nil
}

func (s *MemorySlot) Save(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), payload...)
	s.saves++
	return nil
}

// Put stores a raw payload under key
func (s *MemorySlot) Put(key string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = payload
}

// Saves returns how many times Save was called
func (s *MemorySlot) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
