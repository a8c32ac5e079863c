package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle          UserState = "idle"
	StateWaitingImport UserState = "waiting_import"
)

// Tab is one of the three views of a deck
type Tab string

const (
	TabLearn   Tab = "learn"
	TabReview  Tab = "review"
	TabLearned Tab = "learned"
)

// Status returns the word status listed by the tab
func (t Tab) Status() Status {
	switch t {
	case TabReview:
		return StatusNotLearned
	case TabLearned:
		return StatusLearned
	default:
		return StatusLearning
	}
}

// StateData holds temporary data for user's current state
type StateData struct {
	State UserState
	Tab   Tab
	Page  int // 1-based, list tabs only
}
