package service

import (
	"wordlearner/internal/domain"
)

// Stats holds the counters shown next to the tabs and in the header
type Stats struct {
	Total      int
	Learning   int
	Learned    int
	NotLearned int
	Imported   int
}

// Count returns the number of words listed by tab
func (s Stats) Count(tab domain.Tab) int {
	switch tab {
	case domain.TabReview:
		return s.NotLearned
	case domain.TabLearned:
		return s.Learned
	default:
		return s.Learning
	}
}

// Summarize counts the words of a deck per status
func Summarize(state domain.AppState) Stats {
	st := Stats{Total: len(state.Words), Imported: state.ImportedCount}
	for _, w := range state.Words {
		switch w.Status {
		case domain.StatusLearning:
			st.Learning++
		case domain.StatusLearned:
			st.Learned++
		case domain.StatusNotLearned:
			st.NotLearned++
		}
	}
	return st
}
