package bubbletea

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock stands in for a message that failed to render. The raw
// source is shown beneath the error so the message stays readable.
type ErrorBlock struct {
	err    error
	source string
	styles Styles
}

// NewErrorBlock creates an ErrorBlock for a message whose source could not
// be rendered.
func NewErrorBlock(err error, source string, styles Styles) *ErrorBlock {
	return &ErrorBlock{err: err, source: source, styles: styles}
}

func (b *ErrorBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ErrorBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	head := wrap.Render(b.styles.Error.Render(fmt.Sprintf("Error: %v", b.err)))
	if b.source == "" {
		return head
	}
	return head + "\n" + wrap.Render(b.styles.Muted.Render(b.source))
}
