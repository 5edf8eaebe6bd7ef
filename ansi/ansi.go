// Package ansi renders chatmark elements to ANSI-styled terminal output
// using lipgloss for styling.
package ansi

import "github.com/fwojciec/chatmark"

// Render returns the terminal text for a rendered document. Paragraphs and
// list items are word-wrapped to width. Code blocks are truncated rather
// than reflowed.
func Render(doc *chatmark.Document, width int) string {
	if doc == nil {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	return newRenderer().blocks(doc.Children, width, "\n\n")
}

// Display implements chatmark.Display by running a pipeline and rendering
// its result for the terminal.
type Display struct {
	pipeline *chatmark.Pipeline
}

// Interface compliance check.
var _ chatmark.Display = (*Display)(nil)

// NewDisplay returns a display backed by p.
func NewDisplay(p *chatmark.Pipeline) *Display {
	return &Display{pipeline: p}
}

// Display renders markdown source at the given width.
func (d *Display) Display(source string, width int) (string, error) {
	res, err := d.pipeline.Render(source)
	if err != nil {
		return "", err
	}
	return Render(res.Root, width), nil
}
