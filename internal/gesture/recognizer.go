// Package gesture turns a horizontal pointer drag into a swipe decision.
//
// A Recognizer is Idle until Begin is called, then Dragging until End or
// Cancel. Nothing survives from one gesture to the next.
package gesture

import (
	"math"
	"time"

	"wordlearner/internal/domain"
)

// Default tunables
const (
	DefaultCommitFraction = 0.4
	DefaultMinVelocity    = 0.5 // units per millisecond
	DefaultMaxDuration    = 2000 * time.Millisecond
)

// Config holds the commit predicate tunables
type Config struct {
	// CommitFraction of the viewport width the drag must reach
	CommitFraction float64
	// MinVelocity in units per millisecond, measured on the last move
	MinVelocity float64
	// MaxDuration from press to release
	MaxDuration time.Duration
}

// DefaultConfig returns the stock tunables
func DefaultConfig() Config {
	return Config{
		CommitFraction: DefaultCommitFraction,
		MinVelocity:    DefaultMinVelocity,
		MaxDuration:    DefaultMaxDuration,
	}
}

// Phase of a recognizer
type Phase int

const (
	Idle Phase = iota
	Dragging
)

// Direction of a committed swipe
type Direction int

const (
	None Direction = iota
	Left
	Right
)

// Outcome maps a swipe direction to the review status it commits
func (d Direction) Outcome() (domain.Status, bool) {
	switch d {
	case Right:
		return domain.StatusLearned, true
	case Left:
		return domain.StatusNotLearned, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Feedback is what a front-end needs to draw the card while it is dragged
type Feedback struct {
	Offset       float64
	Velocity     float64
	InCommitZone bool
}

// Decision is the result of releasing the pointer
type Decision struct {
	Direction Direction
	Offset    float64
	Velocity  float64
	Elapsed   time.Duration
	// Tap is set when the pointer was released without moving
	Tap bool
}

// Committed reports whether the gesture resolved into a swipe
func (d Decision) Committed() bool {
	return d.Direction != None
}

// Recognizer classifies one drag at a time
type Recognizer struct {
	cfg           Config
	haptics       Haptics
	viewportWidth float64

	phase    Phase
	startX   float64
	startAt  time.Time
	lastX    float64
	lastAt   time.Time
	offset   float64
	velocity float64
	inZone   bool
	pulsed   bool
	moved    bool
}

// NewRecognizer creates a recognizer. haptics may be nil.
func NewRecognizer(cfg Config, viewportWidth float64, haptics Haptics) *Recognizer {
	return &Recognizer{
		cfg:           cfg,
		haptics:       haptics,
		viewportWidth: viewportWidth,
	}
}

// SetViewportWidth updates the width the commit threshold is derived from
func (r *Recognizer) SetViewportWidth(width float64) {
	r.viewportWidth = width
}

// Threshold returns the distance a drag must reach to commit
func (r *Recognizer) Threshold() float64 {
	return r.cfg.CommitFraction * r.viewportWidth
}

// Phase returns the current phase
func (r *Recognizer) Phase() Phase {
	return r.phase
}

// Feedback returns the live drag values
func (r *Recognizer) Feedback() Feedback {
	return Feedback{Offset: r.offset, Velocity: r.velocity, InCommitZone: r.inZone}
}

// Begin starts a drag at x. A drag already in progress is discarded.
func (r *Recognizer) Begin(x float64, at time.Time) {
	r.reset()
	r.phase = Dragging
	r.startX, r.lastX = x, x
	r.startAt, r.lastAt = at, at
}

// Move tracks the pointer. Calls while Idle are ignored.
func (r *Recognizer) Move(x float64, at time.Time) Feedback {
	if r.phase != Dragging {
		return Feedback{}
	}

	r.offset = x - r.startX
	r.velocity = 0
	if dt := float64(at.Sub(r.lastAt)) / float64(time.Millisecond); dt > 0 {
		r.velocity = math.Abs(x-r.lastX) / dt
	}
	r.lastX, r.lastAt = x, at
	if x != r.startX {
		r.moved = true
	}

	r.inZone = r.reachedThreshold()
	if r.inZone && !r.pulsed {
		r.pulsed = true
		if r.haptics != nil {
			r.haptics.Pulse()
		}
	}

	return r.Feedback()
}

// End releases the pointer and classifies the drag. The recognizer is Idle afterwards.
func (r *Recognizer) End(at time.Time) Decision {
	if r.phase != Dragging {
		return Decision{}
	}

	d := Decision{
		Offset:   r.offset,
		Velocity: r.velocity,
		Elapsed:  at.Sub(r.startAt),
		Tap:      !r.moved,
	}

	if r.reachedThreshold() &&
		r.velocity > r.cfg.MinVelocity &&
		d.Elapsed < r.cfg.MaxDuration {
		if r.offset > 0 {
			d.Direction = Right
		} else {
			d.Direction = Left
		}
	}

	r.reset()
	return d
}

// reachedThreshold reports whether the drag is in the commit zone.
// The boundary itself counts: a 200 unit drag on a 500 unit viewport commits.
func (r *Recognizer) reachedThreshold() bool {
	return r.viewportWidth > 0 && math.Abs(r.offset) >= r.Threshold()
}

// Cancel abandons the drag without a decision
func (r *Recognizer) Cancel() {
	r.reset()
}

func (r *Recognizer) reset() {
	r.phase = Idle
	r.startX, r.lastX = 0, 0
	r.startAt, r.lastAt = time.Time{}, time.Time{}
	r.offset = 0
	r.velocity = 0
	r.inZone = false
	r.pulsed = false
	r.moved = false
}
