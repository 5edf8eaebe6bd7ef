package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatmark"
)

var _ MessageBlock = (*MessageTextBlock)(nil)

// MessageTextBlock renders one markdown message under a title line. The
// rendered body is cached per width since the source never changes.
type MessageTextBlock struct {
	title     string
	source    string
	display   chatmark.Display
	styles    Styles
	focused   bool
	collapsed bool
	byWidth   map[int]string
}

// NewMessageTextBlock creates a block for a message.
func NewMessageTextBlock(msg Message, display chatmark.Display, styles Styles) *MessageTextBlock {
	return &MessageTextBlock{
		title:   msg.Title,
		source:  msg.Source,
		display: display,
		styles:  styles,
		byWidth: make(map[int]string),
	}
}

// Collapsed reports whether only the title line is shown.
func (b *MessageTextBlock) Collapsed() bool { return b.collapsed }

func (b *MessageTextBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleMsg:
		b.collapsed = !b.collapsed
	case FocusMsg:
		b.focused = msg.Focused
	}
	return b, nil
}

func (b *MessageTextBlock) View(width int) string {
	header := b.header()
	if b.collapsed {
		return header
	}
	return header + "\n" + b.body(width)
}

func (b *MessageTextBlock) header() string {
	marker := "▾ "
	if b.collapsed {
		marker = "▸ "
	}
	if b.focused {
		return b.styles.Accent.Render(marker + b.title)
	}
	return b.styles.Muted.Render(marker + b.title)
}

func (b *MessageTextBlock) body(width int) string {
	if out, ok := b.byWidth[width]; ok {
		return out
	}
	out, err := b.display.Display(b.source, width)
	if err != nil {
		// Not cached, so a later width change retries.
		return NewErrorBlock(err, b.source, b.styles).View(width)
	}
	b.byWidth[width] = out
	return out
}
