// Package deck holds the word state machine: which word is presented next and
// how review outcomes change a deck. Every function returns a new state and
// leaves its input untouched.
package deck

import (
	"time"

	"wordlearner/internal/domain"
)

// CurrentWord returns the first word, in collection order, that is still Learning.
// ok is false when the deck is exhausted.
func CurrentWord(state domain.AppState) (word domain.WordRecord, ok bool) {
	i := state.ActiveIndex()
	if i < 0 {
		return domain.WordRecord{}, false
	}
	return state.Words[i], true
}

// ApplyReview records outcome for the current word and clears the reveal flag.
// The next current word is derived again from scratch, so earlier Learning
// words always win over later ones.
func ApplyReview(state domain.AppState, outcome domain.Status, now time.Time) domain.AppState {
	if outcome != domain.StatusLearned && outcome != domain.StatusNotLearned {
		return state
	}

	i := state.ActiveIndex()
	if i < 0 {
		return state
	}

	next := state.Clone()
	reviewedAt := now
	next.Words[i].Status = outcome
	next.Words[i].LastReviewedAt = &reviewedAt
	next.RevealTranslation = false
	return next
}

// ToggleReveal flips whether the back of the current card is shown
func ToggleReveal(state domain.AppState) domain.AppState {
	next := state.Clone()
	next.RevealTranslation = !state.RevealTranslation
	return next
}

// ToggleNativeFirst flips which side of a card is shown first
func ToggleNativeFirst(state domain.AppState) domain.AppState {
	next := state.Clone()
	next.NativeFirst = !state.NativeFirst
	return next
}

// ResetWord puts the word back into Learning. Other fields are kept.
// changed is false when id is unknown.
func ResetWord(state domain.AppState, id string) (next domain.AppState, changed bool) {
	for i, w := range state.Words {
		if w.ID != id {
			continue
		}
		next = state.Clone()
		next.Words[i].Status = domain.StatusLearning
		return next, true
	}
	return state, false
}

// AddWords appends records after the existing ones and bumps the import counter
func AddWords(state domain.AppState, records []domain.WordRecord) domain.AppState {
	if len(records) == 0 {
		return state
	}

	next := state.Clone()
	next.Words = append(next.Words, records...)
	next.ImportedCount += len(records)
	return next
}

// WordsByStatus returns the words holding status, in collection order
func WordsByStatus(state domain.AppState, status domain.Status) []domain.WordRecord {
	var out []domain.WordRecord
	for _, w := range state.Words {
		if w.Status == status {
			out = append(out, w)
		}
	}
	return out
}

// Find looks a word up by id
func Find(state domain.AppState, id string) (domain.WordRecord, bool) {
	for _, w := range state.Words {
		if w.ID == id {
			return w, true
		}
	}
	return domain.WordRecord{}, false
}
