package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmark"
)

// Styles maps a Theme to lipgloss styles for TUI chrome. Message bodies
// are styled by the display.
type Styles struct {
	Error  lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
	Rule   lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t chatmark.Theme) Styles {
	return Styles{
		Error:  lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:  lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent: lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Rule:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
