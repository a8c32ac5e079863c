package tui

import (
	"fmt"
	"math"
	"strings"

	"wordlearner/internal/domain"
	"wordlearner/internal/service"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	stats := m.session.Stats()

	var body string
	switch {
	case m.importing:
		body = m.importView()
	case m.tab == domain.TabLearn:
		body = m.cardView(stats)
	default:
		body = m.listView()
	}

	parts := []string{m.tabsView(stats), "", body, ""}
	if m.status != "" && m.now().Before(m.statusExpiry) {
		style := statusOKStyle
		if m.statusWarn {
			style = statusWarnStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, m.helpView())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) tabsView(stats service.Stats) string {
	tabs := []struct {
		tab   domain.Tab
		label string
	}{
		{domain.TabLearn, "1 Learn"},
		{domain.TabReview, "2 Review"},
		{domain.TabLearned, "3 Learned"},
	}

	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf("%s (%d)", t.label, stats.Count(t.tab))
		if t.tab == m.tab {
			rendered = append(rendered, activeTabStyle.Render(label))
		} else {
			rendered = append(rendered, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) cardView(stats service.Stats) string {
	if stats.Total == 0 {
		return headerStyle.Render("Your deck is empty.") + "\n\nPress i and paste lines like word,translation"
	}

	state := m.session.State()
	word, ok := m.session.CurrentWord()
	if !ok {
		return headerStyle.Render("Nothing left to learn!") + "\n\nImport more words or reset some from Review."
	}

	content := frontStyle.Render(word.Front(state.NativeFirst))
	if state.RevealTranslation {
		content += "\n\n" + backStyle.Render(word.Back(state.NativeFirst))
	}

	style := cardStyle
	if m.feedback.InCommitZone {
		style = commitCardStyle
	}
	card := style.Width(max(m.width/2, 20)).Render(content)

	// follow the pointer, clamped to the screen
	shift := int(math.Round(m.feedback.Offset / cellWidth))
	indent := max((m.width-lipgloss.Width(card))/2+shift, 0)
	card = lipgloss.NewStyle().MarginLeft(indent).Render(card)

	return lipgloss.JoinVertical(lipgloss.Left, card, "", m.swipeHints())
}

func (m Model) swipeHints() string {
	left := idleHintStyle.Render("← not learned")
	right := idleHintStyle.Render("learned →")
	if m.feedback.InCommitZone {
		if m.feedback.Offset < 0 {
			left = notLearnedHintStyle.Render("← not learned")
		} else {
			right = learnedHintStyle.Render("learned →")
		}
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 2)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) listView() string {
	words := m.session.Words(m.tab.Status())
	if len(words) == 0 {
		return bulletStyle.Render("Nothing here yet.")
	}

	nativeFirst := m.session.State().NativeFirst
	now := m.now()

	start, end := visibleRange(len(words), m.cursor, m.listHeight())
	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		w := words[i]
		line := fmt.Sprintf("%3d. %s — %s", i+1, w.Front(nativeFirst), w.Back(nativeFirst))
		if i == m.cursor {
			line = selectedRowStyle.Render(line)
		}
		if w.LastReviewedAt != nil {
			line += "  " + reviewedStyle.Render("Reviewed: "+domain.ReviewedLabel(*w.LastReviewedAt, now))
		}
		lines = append(lines, line)
	}
	if end < len(words) {
		lines = append(lines, bulletStyle.Render(fmt.Sprintf("     … %d more", len(words)-end)))
	}
	return strings.Join(lines, "\n")
}

// listHeight is how many rows of a list fit between the tabs and the help line
func (m Model) listHeight() int {
	return max(m.height-7, 5)
}

// visibleRange returns the window [start, end) of n rows that keeps cursor visible
func visibleRange(n, cursor, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

func (m Model) importView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Import words"),
		bulletStyle.Render("One pair per line, fields after the second are ignored."),
		"",
		m.input.View(),
	)
}

func (m Model) helpView() string {
	var keys [][2]string
	switch {
	case m.importing:
		keys = [][2]string{{"ctrl+s", "import"}, {"esc", "cancel"}}
	case m.tab == domain.TabLearn:
		keys = [][2]string{{"space", "reveal"}, {"←/h", "not learned"}, {"→/l", "learned"}, {"drag", "swipe"}, {"o", "swap sides"}, {"i", "import"}, {"q", "quit"}}
	default:
		keys = [][2]string{{"↑/↓", "select"}, {"r", "back to learn"}, {"o", "swap sides"}, {"i", "import"}, {"q", "quit"}}
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, keyStyle.Render(k[0])+" "+actionStyle.Render(k[1]))
	}
	return strings.Join(parts, bulletStyle.Render(" • "))
}
