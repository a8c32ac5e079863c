package domain

// AppState is the whole learning state of one owner.
// Words keeps insertion order; the active word is derived from it.
type AppState struct {
	Words             []WordRecord
	RevealTranslation bool
	NativeFirst       bool
	ImportedCount     int
}

// NewAppState returns the cold-start state
func NewAppState() AppState {
	return AppState{NativeFirst: true}
}

// ActiveIndex returns the index of the first Learning word, or -1
func (s AppState) ActiveIndex() int {
	for i, w := range s.Words {
		if w.Status == StatusLearning {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no slice memory with s
func (s AppState) Clone() AppState {
	out := s
	out.Words = make([]WordRecord, len(s.Words))
	copy(out.Words, s.Words)
	return out
}
