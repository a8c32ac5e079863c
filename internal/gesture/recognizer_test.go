package gesture

import (
	"bytes"
	"testing"
	"time"

	"wordlearner/internal/domain"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

type countingHaptics struct {
	pulses int
}

func (h *countingHaptics) Pulse() { h.pulses++ }

func TestRecognizer_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		moves          []float64
		moveAt         []int
		releaseAt      int
		expectedDir    Direction
		expectedInZone bool
	}{
		{
			name:           "200px in 150ms commits right",
			moves:          []float64{300},
			moveAt:         []int{150},
			releaseAt:      150,
			expectedDir:    Right,
			expectedInZone: true,
		},
		{
			name:        "150px stays below threshold",
			moves:       []float64{250},
			moveAt:      []int{150},
			releaseAt:   150,
			expectedDir: None,
		},
		{
			name:           "250px over 3000ms exceeds duration",
			moves:          []float64{350},
			moveAt:         []int{3000},
			releaseAt:      3000,
			expectedDir:    None,
			expectedInZone: true,
		},
		{
			name:           "fast left swipe commits left",
			moves:          []float64{60, -150},
			moveAt:         []int{40, 200},
			releaseAt:      210,
			expectedDir:    Left,
			expectedInZone: true,
		},
		{
			name:           "slow final move fails velocity",
			moves:          []float64{320, 330},
			moveAt:         []int{100, 600},
			releaseAt:      600,
			expectedDir:    None,
			expectedInZone: true,
		},
		{
			name:           "fast but released after max duration",
			moves:          []float64{100, 400},
			moveAt:         []int{1900, 2000},
			releaseAt:      2000,
			expectedDir:    None,
			expectedInZone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecognizer(DefaultConfig(), 500, nil)
			assert.Equal(t, 200.0, r.Threshold())

			r.Begin(100, ms(0))
			assert.Equal(t, Dragging, r.Phase())

			var fb Feedback
			for i, x := range tt.moves {
				fb = r.Move(x, ms(tt.moveAt[i]))
			}
			assert.Equal(t, tt.expectedInZone, fb.InCommitZone)

			d := r.End(ms(tt.releaseAt))
			assert.Equal(t, tt.expectedDir, d.Direction)
			assert.Equal(t, tt.expectedDir != None, d.Committed())

			assert.Equal(t, Idle, r.Phase())
			assert.Equal(t, Feedback{}, r.Feedback())
		})
	}
}

func TestRecognizer_VelocityOnFirstMove(t *testing.T) {
	r := NewRecognizer(DefaultConfig(), 500, nil)
	r.Begin(0, ms(0))

	fb := r.Move(200, ms(150))

	assert.InDelta(t, 1.333, fb.Velocity, 0.001)
	assert.Equal(t, 200.0, fb.Offset)
}

func TestRecognizer_ZeroTimeDeltaHasZeroVelocity(t *testing.T) {
	r := NewRecognizer(DefaultConfig(), 500, nil)
	r.Begin(0, ms(0))

	fb := r.Move(300, ms(0))
	assert.Equal(t, 0.0, fb.Velocity)
	assert.True(t, fb.InCommitZone)

	d := r.End(ms(10))
	assert.Equal(t, None, d.Direction)
}

func TestRecognizer_HapticPulseOncePerDrag(t *testing.T) {
	h := &countingHaptics{}
	r := NewRecognizer(DefaultConfig(), 500, h)

	r.Begin(0, ms(0))
	r.Move(100, ms(50))
	assert.Equal(t, 0, h.pulses)

	r.Move(250, ms(100))
	assert.Equal(t, 1, h.pulses)

	// leave and re-enter the zone
	r.Move(50, ms(150))
	r.Move(260, ms(200))
	assert.Equal(t, 1, h.pulses)

	r.End(ms(210))

	r.Begin(0, ms(1000))
	r.Move(-300, ms(1100))
	assert.Equal(t, 2, h.pulses)
}

func TestRecognizer_NilHapticsIgnored(t *testing.T) {
	r := NewRecognizer(DefaultConfig(), 500, nil)
	r.Begin(0, ms(0))

	assert.NotPanics(t, func() { r.Move(400, ms(100)) })
}

func TestRecognizer_Cancel(t *testing.T) {
	r := NewRecognizer(DefaultConfig(), 500, nil)
	r.Begin(0, ms(0))
	r.Move(400, ms(100))

	r.Cancel()

	assert.Equal(t, Idle, r.Phase())
	assert.Equal(t, Feedback{}, r.Feedback())
	assert.Equal(t, Decision{}, r.End(ms(120)))
}

func TestRecognizer_IdleEventsIgnored(t *testing.T) {
	r := NewRecognizer(DefaultConfig(), 500, nil)

	assert.Equal(t, Feedback{}, r.Move(400, ms(100)))
	assert.Equal(t, Decision{}, r.End(ms(120)))
}

func TestRecognizer_Tap(t *testing.T) {
	r := NewRecognizer(DefaultConfig(), 500, nil)

	r.Begin(10, ms(0))
	d := r.End(ms(80))
	assert.True(t, d.Tap)
	assert.False(t, d.Committed())

	r.Begin(10, ms(100))
	r.Move(20, ms(120))
	d = r.End(ms(130))
	assert.False(t, d.Tap)
}

func TestRecognizer_UnknownViewportNeverCommits(t *testing.T) {
	r := NewRecognizer(DefaultConfig(), 0, nil)
	r.Begin(0, ms(0))
	fb := r.Move(300, ms(50))

	assert.False(t, fb.InCommitZone)
	assert.False(t, r.End(ms(60)).Committed())

	r.SetViewportWidth(500)
	r.Begin(0, ms(100))
	r.Move(300, ms(150))
	assert.True(t, r.End(ms(160)).Committed())
}

func TestRecognizer_BeginDiscardsPreviousDrag(t *testing.T) {
	h := &countingHaptics{}
	r := NewRecognizer(DefaultConfig(), 500, h)

	r.Begin(0, ms(0))
	r.Move(300, ms(100))
	r.Begin(300, ms(200))

	assert.Equal(t, Feedback{}, r.Feedback())
	d := r.End(ms(210))
	assert.True(t, d.Tap)
	assert.False(t, d.Committed())
}

func TestDirection_Outcome(t *testing.T) {
	s, ok := Right.Outcome()
	assert.True(t, ok)
	assert.Equal(t, domain.StatusLearned, s)

	s, ok = Left.Outcome()
	assert.True(t, ok)
	assert.Equal(t, domain.StatusNotLearned, s)

	_, ok = None.Outcome()
	assert.False(t, ok)
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	Bell(&buf).Pulse()
	assert.Equal(t, "\a", buf.String())
}
