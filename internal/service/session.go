package service

import (
	"context"
	"time"

	"wordlearner/internal/deck"
	"wordlearner/internal/domain"

	"go.uber.org/zap"
)

// Session owns the deck of one learner. Every mutation replaces the state and
// writes it to the slot before returning. A Session is not safe for
// concurrent use; callers serialize access per owner.
type Session struct {
	key    string
	store  *WordStore
	state  domain.AppState
	logger *zap.Logger
	now    func() time.Time
}

// OpenSession loads the deck saved under key, or starts a fresh one
func (s *WordStore) OpenSession(ctx context.Context, key string) *Session {
	return &Session{
		key:    key,
		store:  s,
		state:  s.Load(ctx, key),
		logger: s.logger.With(zap.String("slot", key)),
		now:    s.now,
	}
}

// Key returns the slot the session persists to
func (s *Session) Key() string {
	return s.key
}

// State returns a copy of the current state
func (s *Session) State() domain.AppState {
	return s.state.Clone()
}

// CurrentWord returns the word to present, if any
func (s *Session) CurrentWord() (domain.WordRecord, bool) {
	return deck.CurrentWord(s.state)
}

// Word looks a word up by id
func (s *Session) Word(id string) (domain.WordRecord, bool) {
	return deck.Find(s.state, id)
}

// Words returns the words holding status
func (s *Session) Words(status domain.Status) []domain.WordRecord {
	return deck.WordsByStatus(s.state, status)
}

// Stats summarizes the deck
func (s *Session) Stats() Stats {
	return Summarize(s.state)
}

// Import adds every usable line of text as a new Learning word
func (s *Session) Import(ctx context.Context, text string) (int, error) {
	next, count := s.store.ImportFromDelimitedText(s.state, text)
	if count == 0 {
		s.logger.Info("Import added no words")
		return 0, nil
	}

	s.logger.Info("Words imported", zap.Int("count", count))
	return count, s.commit(ctx, next)
}

// ToggleReveal flips the card. The flag is per-card and not persisted.
func (s *Session) ToggleReveal() {
	s.state = deck.ToggleReveal(s.state)
}

// Review applies outcome to the current word.
// reviewed is false when the deck was already exhausted.
func (s *Session) Review(ctx context.Context, outcome domain.Status) (reviewed bool, err error) {
	if outcome != domain.StatusLearned && outcome != domain.StatusNotLearned {
		return false, nil
	}

	current, ok := deck.CurrentWord(s.state)
	if !ok {
		return false, nil
	}

	next := deck.ApplyReview(s.state, outcome, s.now())

	s.logger.Debug("Word reviewed",
		zap.String("word_id", current.ID),
		zap.Stringer("outcome", outcome),
	)
	return true, s.commit(ctx, next)
}

// ResetWord puts the word back into Learning
func (s *Session) ResetWord(ctx context.Context, id string) (bool, error) {
	next, changed := s.store.ResetWordStatus(s.state, id)
	if !changed {
		return false, nil
	}

	s.logger.Debug("Word reset", zap.String("word_id", id))
	return true, s.commit(ctx, next)
}

// ToggleNativeFirst switches which side of the card is shown first
func (s *Session) ToggleNativeFirst(ctx context.Context) error {
	return s.commit(ctx, deck.ToggleNativeFirst(s.state))
}

// commit adopts next and persists it. The new state is kept even when the
// write fails; the returned error wraps ErrPersist.
func (s *Session) commit(ctx context.Context, next domain.AppState) error {
	s.state = next
	return s.store.Save(ctx, s.key, next)
}
