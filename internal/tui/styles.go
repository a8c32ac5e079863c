package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Tab styles
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("236"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	// Card styles
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 4).
			Align(lipgloss.Center)

	commitCardStyle = cardStyle.BorderForeground(lipgloss.Color("86"))

	frontStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	backStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	learnedHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)  // Green
	notLearnedHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // Red
	idleHintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))            // Gray

	// List styles
	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
	reviewedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// Help and status
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // Blue
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))  // Green
	bulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Gray

	statusOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	statusWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))
)
