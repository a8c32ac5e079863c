package gesture

import (
	"io"
)

// Haptics is the optional platform capability pulsed when a drag first
// enters the commit zone
type Haptics interface {
	Pulse()
}

// HapticsFunc adapts a function to Haptics
type HapticsFunc func()

// Pulse calls f
func (f HapticsFunc) Pulse() { f() }

// Bell returns Haptics that rings the terminal bell on w.
// Write errors are ignored.
func Bell(w io.Writer) Haptics {
	return HapticsFunc(func() {
		_, _ = w.Write([]byte("\a"))
	})
}
