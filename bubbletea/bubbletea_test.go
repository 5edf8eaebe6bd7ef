package bubbletea_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatmark"
	bt "github.com/fwojciec/chatmark/bubbletea"
	"github.com/fwojciec/chatmark/mock"
	"github.com/stretchr/testify/require"
)

// echoDisplay wraps the source in brackets so tests can spot rendered text.
func echoDisplay() *mock.Display {
	return &mock.Display{
		DisplayFn: func(source string, width int) (string, error) {
			return "[" + source + "]", nil
		},
	}
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, display chatmark.Display, messages ...bt.Message) bt.Model {
	t.Helper()
	return initModelWithSize(t, display, 80, 24, messages...)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, display chatmark.Display, width, height int, messages ...bt.Message) bt.Model {
	t.Helper()
	m := bt.New(display, messages, chatmark.DefaultTheme())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// typeString sends s to the model one rune at a time.
func typeString(t *testing.T, m bt.Model, s string) bt.Model {
	t.Helper()
	for _, r := range s {
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}
