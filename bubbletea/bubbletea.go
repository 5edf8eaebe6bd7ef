// Package bubbletea provides a Bubble Tea TUI for reading rendered chat
// messages and composing new ones with a live preview.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Message is one markdown message shown in the viewer.
type Message struct {
	Title  string
	Source string
}

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}
