// Package mock provides test doubles for chatmark interfaces using function fields.
package mock

import "github.com/fwojciec/chatmark"

// Interface compliance checks.
var (
	_ chatmark.Parser  = (*Parser)(nil)
	_ chatmark.Display = (*Display)(nil)
)

// Parser is a test double for chatmark.Parser.
// Set ParseFn before calling Parse.
type Parser struct {
	ParseFn func(source string, cfg chatmark.ParseConfig) (*chatmark.Node, error)
}

// Parse delegates to ParseFn.
func (p *Parser) Parse(source string, cfg chatmark.ParseConfig) (*chatmark.Node, error) {
	return p.ParseFn(source, cfg)
}

// Display is a test double for chatmark.Display.
// Set DisplayFn before calling Display.
type Display struct {
	DisplayFn func(source string, width int) (string, error)
}

// Display delegates to DisplayFn.
func (d *Display) Display(source string, width int) (string, error) {
	return d.DisplayFn(source, width)
}
