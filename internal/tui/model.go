// Package tui is the terminal front-end: one deck, three tabs, and swipe
// gestures driven by mouse drags on the Learn tab.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wordlearner/internal/domain"
	"wordlearner/internal/gesture"
	"wordlearner/internal/service"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const statusTTL = 4 * time.Second

// cellWidth converts terminal columns to the nominal pixels the recognizer
// measures offsets and velocities in.
const cellWidth = 8

// statusMsg sets the line below the view
type statusMsg struct {
	message string
	warn    bool
}

func showStatus(message string, warn bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{message: message, warn: warn}
	}
}

// Model is the bubbletea model of the learner
type Model struct {
	ctx        context.Context
	session    *service.Session
	recognizer *gesture.Recognizer
	logger     *zap.Logger
	now        func() time.Time

	tab    domain.Tab
	cursor int
	width  int
	height int

	feedback  gesture.Feedback
	lastDragX float64

	importing bool
	input     textarea.Model

	status       string
	statusWarn   bool
	statusExpiry time.Time
}

// New creates the model. The recognizer gets its viewport width from the
// first window size message.
func New(ctx context.Context, session *service.Session, recognizer *gesture.Recognizer, logger *zap.Logger) Model {
	input := textarea.New()
	input.Placeholder = "word,translation"
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0

	return Model{
		ctx:        ctx,
		session:    session,
		recognizer: recognizer,
		logger:     logger,
		now:        time.Now,
		tab:        domain.TabLearn,
		input:      input,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = msg.message
		m.statusWarn = msg.warn
		m.statusExpiry = m.now().Add(statusTTL)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recognizer.SetViewportWidth(float64(msg.Width * cellWidth))
		m.cancelDrag()
		m.input.SetWidth(max(msg.Width-4, 10))
		m.input.SetHeight(max(msg.Height-10, 3))
		return m, nil

	case tea.MouseMsg:
		if m.importing {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.importing {
			return m.handleImportKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1":
		m.switchTab(domain.TabLearn)
	case "2":
		m.switchTab(domain.TabReview)
	case "3":
		m.switchTab(domain.TabLearned)
	case "o":
		return m, m.persisted(m.session.ToggleNativeFirst(m.ctx), "")
	case "i":
		m.cancelDrag()
		m.importing = true
		m.input.Reset()
		return m, m.input.Focus()
	}

	if m.tab == domain.TabLearn {
		return m.handleLearnKeys(msg)
	}
	return m.handleListKeys(msg)
}

func (m Model) handleLearnKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter":
		m.session.ToggleReveal()
	case "left", "h":
		return m, m.review(domain.StatusNotLearned)
	case "right", "l":
		return m, m.review(domain.StatusLearned)
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	words := m.session.Words(m.tab.Status())

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(words)-1 {
			m.cursor++
		}
	case "r":
		if m.cursor >= len(words) {
			return m, nil
		}
		word := words[m.cursor]
		changed, err := m.session.ResetWord(m.ctx, word.ID)
		if !changed && err == nil {
			return m, nil
		}
		m.clampCursor()
		return m, m.persisted(err, fmt.Sprintf("↩ %s is back in Learn", word.Term))
	}
	return m, nil
}

func (m Model) handleImportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.importing = false
		m.input.Blur()
		return m, showStatus("Import cancelled", false)
	case "ctrl+s":
		m.importing = false
		m.input.Blur()
		return m, m.importText(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleMouse feeds left-button drags on the Learn tab to the recognizer
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.tab != domain.TabLearn {
		return m, nil
	}

	x := float64(msg.X * cellWidth)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if _, ok := m.session.CurrentWord(); !ok {
			return m, nil
		}
		m.recognizer.Begin(x, m.now())
		m.feedback = m.recognizer.Feedback()
		m.lastDragX = x

	case tea.MouseActionMotion:
		// vertical motion would read as a stop
		if m.recognizer.Phase() != gesture.Dragging || x == m.lastDragX {
			return m, nil
		}
		m.feedback = m.recognizer.Move(x, m.now())
		m.lastDragX = x

	case tea.MouseActionRelease:
		if m.recognizer.Phase() != gesture.Dragging {
			return m, nil
		}
		if x != m.lastDragX {
			m.recognizer.Move(x, m.now())
		}
		decision := m.recognizer.End(m.now())
		m.feedback = gesture.Feedback{}

		m.logger.Debug("Drag released",
			zap.Stringer("direction", decision.Direction),
			zap.Float64("offset", decision.Offset),
			zap.Float64("velocity", decision.Velocity),
			zap.Duration("elapsed", decision.Elapsed),
		)

		if decision.Tap {
			m.session.ToggleReveal()
			return m, nil
		}
		if !decision.Committed() {
			return m, nil
		}
		if outcome, ok := decision.Direction.Outcome(); ok {
			return m, m.review(outcome)
		}
	}
	return m, nil
}

func (m *Model) switchTab(tab domain.Tab) {
	m.cancelDrag()
	m.tab = tab
	m.cursor = 0
}

func (m *Model) cancelDrag() {
	m.recognizer.Cancel()
	m.feedback = gesture.Feedback{}
}

func (m *Model) clampCursor() {
	n := len(m.session.Words(m.tab.Status()))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) review(outcome domain.Status) tea.Cmd {
	reviewed, err := m.session.Review(m.ctx, outcome)
	if !reviewed && err == nil {
		return nil
	}
	return m.persisted(err, "")
}

func (m *Model) importText(text string) tea.Cmd {
	count, err := m.session.Import(m.ctx, text)
	if count == 0 {
		return showStatus("No words found, expected one word,translation pair per line", true)
	}
	m.tab = domain.TabLearn
	return m.persisted(err, fmt.Sprintf("✓ Imported %d words", count))
}

// persisted reports a write failure as a warning, or ok when given
func (m *Model) persisted(err error, ok string) tea.Cmd {
	switch {
	case err == nil && ok == "":
		return nil
	case err == nil:
		return showStatus(ok, false)
	case errors.Is(err, service.ErrPersist):
		return showStatus("⚠ Progress could not be saved; it is kept until you quit", true)
	default:
		m.logger.Error("Session operation failed", zap.Error(err))
		return showStatus("⚠ "+err.Error(), true)
	}
}
