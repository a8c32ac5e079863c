package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"wordlearner/internal/deck"
	"wordlearner/internal/domain"
	"wordlearner/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPersist wraps every failure to write a deck to its slot.
// The in-memory state stays authoritative when it is returned.
var ErrPersist = errors.New("failed to persist deck")

const (
	snapshotVersion  = 1
	defaultDelimiter = ","
)

// snapshot is the persisted form of domain.AppState.
// RevealTranslation is per-card and never stored.
type snapshot struct {
	Version       int                 `json:"version"`
	Words         []domain.WordRecord `json:"words" validate:"dive"`
	NativeFirst   *bool               `json:"nativeFirst,omitempty"`
	ImportedCount int                 `json:"importedWordsCount" validate:"gte=0"`
}

// WordStore imports words and moves decks in and out of a state slot
type WordStore struct {
	slot      repository.StateSlot
	delimiter string
	logger    *zap.Logger
	validate  *validator.Validate

	now   func() time.Time
	newID func() string
}

// NewWordStore creates a new word store. An empty delimiter means comma.
func NewWordStore(slot repository.StateSlot, delimiter string, logger *zap.Logger) *WordStore {
	if delimiter == "" {
		delimiter = defaultDelimiter
	}
	return &WordStore{
		slot:      slot,
		delimiter: delimiter,
		logger:    logger,
		validate:  validator.New(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// ParseDelimited splits text into term/translation pairs.
// Each line is split on delimiter, fields past the second are ignored, quotes
// are stripped and whitespace trimmed. Lines missing either side are dropped.
func ParseDelimited(text, delimiter string) []domain.WordPair {
	if delimiter == "" {
		delimiter = defaultDelimiter
	}

	var pairs []domain.WordPair
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Split(line, delimiter)
		if len(fields) < 2 {
			continue
		}

		term := cleanField(fields[0])
		translation := cleanField(fields[1])
		if term == "" || translation == "" {
			continue
		}

		pairs = append(pairs, domain.WordPair{Term: term, Translation: translation})
	}
	return pairs
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

// ImportFromDelimitedText appends a Learning record for every usable line.
// It returns the new state and how many records were added; zero leaves the
// state as it was.
func (s *WordStore) ImportFromDelimitedText(state domain.AppState, text string) (domain.AppState, int) {
	pairs := ParseDelimited(text, s.delimiter)
	if len(pairs) == 0 {
		return state, 0
	}

	createdAt := s.now()
	records := make([]domain.WordRecord, 0, len(pairs))
	for _, p := range pairs {
		records = append(records, domain.WordRecord{
			ID:          s.newID(),
			Term:        p.Term,
			Translation: p.Translation,
			Status:      domain.StatusLearning,
			CreatedAt:   createdAt,
		})
	}

	return deck.AddWords(state, records), len(records)
}

// ResetWordStatus puts one word back into Learning
func (s *WordStore) ResetWordStatus(state domain.AppState, id string) (domain.AppState, bool) {
	return deck.ResetWord(state, id)
}

// Load reads the deck saved under key.
// Anything short of a valid snapshot is a cold start: the default state is
// returned and the problem is only logged.
func (s *WordStore) Load(ctx context.Context, key string) domain.AppState {
	payload, err := s.slot.Load(ctx, key)
	if errors.Is(err, repository.ErrSlotNotFound) {
		s.logger.Info("No saved deck, starting fresh", zap.String("slot", key))
		return domain.NewAppState()
	}
	if err != nil {
		s.logger.Warn("Failed to read saved deck, starting fresh", zap.String("slot", key), zap.Error(err))
		return domain.NewAppState()
	}

	state, err := s.decode(payload)
	if err != nil {
		s.logger.Warn("Saved deck is corrupt, starting fresh", zap.String("slot", key), zap.Error(err))
		return domain.NewAppState()
	}

	s.logger.Debug("Deck loaded", zap.String("slot", key), zap.Int("words", len(state.Words)))
	return state
}

// Save overwrites the slot with the full state
func (s *WordStore) Save(ctx context.Context, key string, state domain.AppState) error {
	payload, err := encode(state)
	if err != nil {
		s.logger.Error("Failed to encode deck", zap.String("slot", key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	if err := s.slot.Save(ctx, key, payload); err != nil {
		s.logger.Error("Failed to save deck", zap.String("slot", key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	return nil
}

func encode(state domain.AppState) ([]byte, error) {
	nativeFirst := state.NativeFirst
	words := state.Words
	if words == nil {
		words = []domain.WordRecord{}
	}
	return json.Marshal(snapshot{
		Version:       snapshotVersion,
		Words:         words,
		NativeFirst:   &nativeFirst,
		ImportedCount: state.ImportedCount,
	})
}

func (s *WordStore) decode(payload []byte) (domain.AppState, error) {
	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return domain.AppState{}, fmt.Errorf("decode: %w", err)
	}

	if snap.Version != 0 && snap.Version != snapshotVersion {
		return domain.AppState{}, fmt.Errorf("unsupported version %d", snap.Version)
	}

	if err := s.validate.Struct(snap); err != nil {
		return domain.AppState{}, fmt.Errorf("validate: %w", err)
	}

	seen := make(map[string]struct{}, len(snap.Words))
	for _, w := range snap.Words {
		if !w.Status.Valid() {
			return domain.AppState{}, fmt.Errorf("word %q: missing status", w.ID)
		}
		if _, dup := seen[w.ID]; dup {
			return domain.AppState{}, fmt.Errorf("duplicate word id %q", w.ID)
		}
		seen[w.ID] = struct{}{}
	}

	state := domain.NewAppState()
	if len(snap.Words) > 0 {
		state.Words = snap.Words
	}
	state.ImportedCount = snap.ImportedCount
	if snap.NativeFirst != nil {
		state.NativeFirst = *snap.NativeFirst
	}
	return state, nil
}
