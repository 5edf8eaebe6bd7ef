package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatmark"
)

var _ tea.Model = Model{}

const (
	inputHeight  = 3
	statusHeight = 1
	borderHeight = 2 // newlines between sections

	composedTitle = "you"
	previewTitle  = "preview"
)

type keyMap struct {
	Quit   key.Binding
	Submit key.Binding
	Toggle key.Binding
	Focus  key.Binding
	Clear  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("ctrl+c")),
		Submit: key.NewBinding(key.WithKeys("enter")),
		Toggle: key.NewBinding(key.WithKeys("tab")),
		Focus:  key.NewBinding(key.WithKeys("shift+tab")),
		Clear:  key.NewBinding(key.WithKeys("esc")),
	}
}

// Model is the Bubble Tea model for the message viewer.
type Model struct {
	// Input is the compose area. Exported for test access.
	Input textarea.Model
	// Viewport is the scrollable message list. Exported for test access.
	Viewport viewport.Model

	display chatmark.Display
	styles  Styles
	keys    keyMap

	blocks     []MessageBlock
	blockFocus int // index of focused block (-1 = none)

	// preview renders the current draft; nil while the input is empty.
	preview *MessageTextBlock
	draft   string

	ready bool
}

// New creates a viewer showing messages rendered through display.
func New(display chatmark.Display, messages []Message, theme chatmark.Theme) Model {
	ta := textarea.New()
	ta.Placeholder = "Compose a message..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	// Enter submits; ctrl+j starts a new line.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("ctrl+j"))
	ta.Focus()

	m := Model{
		Input:      ta,
		display:    display,
		styles:     NewStyles(theme),
		keys:       newKeyMap(),
		blockFocus: -1,
	}
	for _, msg := range messages {
		m.blocks = append(m.blocks, NewMessageTextBlock(msg, display, m.styles))
	}
	return m.focusBlock(len(m.blocks) - 1)
}

// Len returns the number of messages in the list, excluding the preview.
func (m Model) Len() int { return len(m.blocks) }

// Draft returns the text being composed.
func (m Model) Draft() string { return m.draft }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	vpHeight := max(msg.Height-inputHeight-statusHeight-borderHeight, 1)
	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.SetWidth(msg.Width)
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		if strings.TrimSpace(m.draft) == "" {
			return m, nil
		}
		return m.submit(), nil

	case key.Matches(msg, m.keys.Toggle):
		if m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m = m.cycleFocusPrev()
		m.Viewport.SetContent(m.renderContent())
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.Input.Reset()
		m = m.refreshPreview()
		return m, nil
	}

	// Forward non-character keys to the viewport for scrolling; characters
	// go only to the input.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	m = m.refreshPreview()
	return m, tea.Batch(cmds...)
}

// submit moves the draft into the message list.
func (m Model) submit() Model {
	block := NewMessageTextBlock(Message{Title: composedTitle, Source: m.draft}, m.display, m.styles)
	m.blocks = append(m.blocks, block)
	m.Input.Reset()
	m.draft = ""
	m.preview = nil
	m = m.focusBlock(len(m.blocks) - 1)
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

// refreshPreview re-renders the live preview when the draft changed.
func (m Model) refreshPreview() Model {
	value := m.Input.Value()
	if value == m.draft {
		return m
	}
	m.draft = value
	m.preview = nil
	if strings.TrimSpace(value) != "" {
		m.preview = NewMessageTextBlock(Message{Title: previewTitle, Source: value}, m.display, m.styles)
	}
	if m.ready {
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) renderContent() string {
	views := make([]string, 0, len(m.blocks)+1)
	for _, block := range m.blocks {
		views = append(views, block.View(m.Viewport.Width))
	}
	if m.preview != nil {
		views = append(views, m.styles.Rule.Render(strings.Repeat("─", max(m.Viewport.Width, 1))))
		views = append(views, m.preview.View(m.Viewport.Width))
	}
	return strings.Join(views, "\n\n")
}

// focusBlock moves the focus to index i, telling both blocks.
func (m Model) focusBlock(i int) Model {
	if m.blockFocus >= 0 && m.blockFocus < len(m.blocks) {
		m.blocks[m.blockFocus], _ = m.blocks[m.blockFocus].Update(FocusMsg{Focused: false})
	}
	m.blockFocus = -1
	if i >= 0 && i < len(m.blocks) {
		m.blocks[i], _ = m.blocks[i].Update(FocusMsg{Focused: true})
		m.blockFocus = i
	}
	return m
}

// cycleFocusPrev moves the focus to the previous block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	if len(m.blocks) == 0 {
		return m
	}
	prev := m.blockFocus - 1
	if prev < 0 {
		prev = len(m.blocks) - 1
	}
	return m.focusBlock(prev)
}

func (m Model) statusLine() string {
	return m.styles.Muted.Render(fmt.Sprintf(
		"%d messages · Enter to send, Tab to collapse, Shift+Tab to move, Ctrl+C to quit", len(m.blocks)))
}
