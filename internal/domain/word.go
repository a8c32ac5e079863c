package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the review status of a word
type Status int

const (
	StatusLearning Status = iota + 1
	StatusLearned
	StatusNotLearned
)

var (
	statusNames = [...]string{
		StatusLearning:   "learning",
		StatusLearned:    "learned",
		StatusNotLearned: "not-learned",
	}
	statusByName = map[string]Status{
		"learning":    StatusLearning,
		"learned":     StatusLearned,
		"not-learned": StatusNotLearned,
	}
)

// Valid reports whether s is one of the three known statuses
func (s Status) Valid() bool {
	return s >= StatusLearning && s <= StatusNotLearned
}

func (s Status) String() string {
	if s.Valid() {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus parses the persisted name of a status
func ParseStatus(name string) (Status, error) {
	s, ok := statusByName[name]
	if !ok {
		return 0, fmt.Errorf("invalid status: %q", name)
	}
	return s, nil
}

// MarshalJSON serializes the status as its name
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status: %d", int(s))
	}
	return json.Marshal(statusNames[s])
}

// UnmarshalJSON expects a status name string
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("invalid status: %s", data)
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// WordRecord represents an imported word-translation pair and its review status
type WordRecord struct {
	ID             string     `json:"id" validate:"required"`
	Term           string     `json:"term" validate:"required"`
	Translation    string     `json:"translation" validate:"required"`
	Status         Status     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
}

// Front returns the side shown before the card is revealed
func (w WordRecord) Front(nativeFirst bool) string {
	if nativeFirst {
		return w.Term
	}
	return w.Translation
}

// Back returns the side shown after the card is revealed
func (w WordRecord) Back(nativeFirst bool) string {
	if nativeFirst {
		return w.Translation
	}
	return w.Term
}

// WordPair is a parsed import line before it becomes a record
type WordPair struct {
	Term        string
	Translation string
}
