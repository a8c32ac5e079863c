package deck

import (
	"testing"
	"time"

	"wordlearner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(id string, status domain.Status) domain.WordRecord {
	return domain.WordRecord{
		ID:          id,
		Term:        "term-" + id,
		Translation: "translation-" + id,
		Status:      status,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func stateOf(words ...domain.WordRecord) domain.AppState {
	s := domain.NewAppState()
	s.Words = words
	return s
}

func TestCurrentWord(t *testing.T) {
	tests := []struct {
		name       string
		state      domain.AppState
		expectedID string
		expectedOK bool
	}{
		{
			name:       "empty deck",
			state:      stateOf(),
			expectedOK: false,
		},
		{
			name:       "first word learning",
			state:      stateOf(word("a", domain.StatusLearning), word("b", domain.StatusLearning)),
			expectedID: "a",
			expectedOK: true,
		},
		{
			name: "reviewed words before and after",
			state: stateOf(
				word("a", domain.StatusLearned),
				word("b", domain.StatusNotLearned),
				word("c", domain.StatusLearning),
				word("d", domain.StatusLearned),
				word("e", domain.StatusLearning),
			),
			expectedID: "c",
			expectedOK: true,
		},
		{
			name:       "exhausted",
			state:      stateOf(word("a", domain.StatusLearned), word("b", domain.StatusNotLearned)),
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := CurrentWord(tt.state)
			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.Equal(t, tt.expectedID, w.ID)
			}
		})
	}
}

func TestApplyReview(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	state := stateOf(word("a", domain.StatusLearning), word("b", domain.StatusLearning))
	state.RevealTranslation = true

	next := ApplyReview(state, domain.StatusLearned, now)

	assert.Equal(t, domain.StatusLearned, next.Words[0].Status)
	require.NotNil(t, next.Words[0].LastReviewedAt)
	assert.True(t, now.Equal(*next.Words[0].LastReviewedAt))
	assert.False(t, next.RevealTranslation)

	current, ok := CurrentWord(next)
	assert.True(t, ok)
	assert.Equal(t, "b", current.ID)

	// input is not mutated
	assert.Equal(t, domain.StatusLearning, state.Words[0].Status)
	assert.Nil(t, state.Words[0].LastReviewedAt)
	assert.True(t, state.RevealTranslation)
}

func TestApplyReview_NotLearned(t *testing.T) {
	state := stateOf(word("a", domain.StatusLearning))

	next := ApplyReview(state, domain.StatusNotLearned, time.Now())

	assert.Equal(t, domain.StatusNotLearned, next.Words[0].Status)
	_, ok := CurrentWord(next)
	assert.False(t, ok)
}

func TestApplyReview_EarlierResetWordTakesPriority(t *testing.T) {
	state := stateOf(word("a", domain.StatusLearning), word("b", domain.StatusLearning), word("c", domain.StatusLearning))
	now := time.Now()

	state = ApplyReview(state, domain.StatusLearned, now)
	state = ApplyReview(state, domain.StatusLearned, now)
	state, _ = ResetWord(state, "a")

	current, ok := CurrentWord(state)
	assert.True(t, ok)
	assert.Equal(t, "a", current.ID)
}

func TestApplyReview_NoCurrentWord(t *testing.T) {
	state := stateOf(word("a", domain.StatusLearned))

	next := ApplyReview(state, domain.StatusNotLearned, time.Now())
	again := ApplyReview(next, domain.StatusNotLearned, time.Now())

	assert.Equal(t, state, next)
	assert.Equal(t, state, again)
}

func TestApplyReview_InvalidOutcome(t *testing.T) {
	state := stateOf(word("a", domain.StatusLearning))

	next := ApplyReview(state, domain.StatusLearning, time.Now())

	assert.Equal(t, state, next)
}

func TestToggleReveal(t *testing.T) {
	state := stateOf(word("a", domain.StatusLearning))

	next := ToggleReveal(state)
	assert.True(t, next.RevealTranslation)
	assert.False(t, ToggleReveal(next).RevealTranslation)
}

func TestToggleNativeFirst(t *testing.T) {
	state := domain.NewAppState()
	assert.True(t, state.NativeFirst)
	assert.False(t, ToggleNativeFirst(state).NativeFirst)
}

func TestResetWord(t *testing.T) {
	reviewed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	w := word("a", domain.StatusNotLearned)
	w.LastReviewedAt = &reviewed
	state := stateOf(w, word("b", domain.StatusLearned))

	next, changed := ResetWord(state, "a")

	assert.True(t, changed)
	assert.Equal(t, domain.StatusLearning, next.Words[0].Status)
	assert.Equal(t, w.Term, next.Words[0].Term)
	assert.Equal(t, w.Translation, next.Words[0].Translation)
	assert.Equal(t, w.CreatedAt, next.Words[0].CreatedAt)
	assert.Equal(t, w.LastReviewedAt, next.Words[0].LastReviewedAt)
	assert.Equal(t, domain.StatusNotLearned, state.Words[0].Status)

	_, changed = ResetWord(state, "missing")
	assert.False(t, changed)
}

func TestAddWords(t *testing.T) {
	state := stateOf(word("a", domain.StatusLearned))
	state.ImportedCount = 1

	next := AddWords(state, []domain.WordRecord{word("b", domain.StatusLearning), word("c", domain.StatusLearning)})

	assert.Len(t, next.Words, 3)
	assert.Equal(t, "a", next.Words[0].ID)
	assert.Equal(t, "c", next.Words[2].ID)
	assert.Equal(t, 3, next.ImportedCount)
	assert.Len(t, state.Words, 1)

	assert.Equal(t, state, AddWords(state, nil))
}

func TestWordsByStatus(t *testing.T) {
	state := stateOf(
		word("a", domain.StatusLearned),
		word("b", domain.StatusNotLearned),
		word("c", domain.StatusLearned),
	)

	learned := WordsByStatus(state, domain.StatusLearned)
	assert.Len(t, learned, 2)
	assert.Equal(t, "a", learned[0].ID)
	assert.Equal(t, "c", learned[1].ID)
	assert.Empty(t, WordsByStatus(state, domain.StatusLearning))
}

func TestFind(t *testing.T) {
	state := stateOf(word("a", domain.StatusLearned))

	w, ok := Find(state, "a")
	assert.True(t, ok)
	assert.Equal(t, "term-a", w.Term)

	_, ok = Find(state, "z")
	assert.False(t, ok)
}
