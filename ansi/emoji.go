package ansi

import "github.com/yuin/goldmark-emoji/definition"

var emojis = definition.Github()

// glyph returns the emoji for a shortcode, or literal when the name is
// unknown.
func glyph(name, literal string) string {
	if e, ok := emojis.Get(name); ok && len(e.Unicode) > 0 {
		return string(e.Unicode)
	}
	return literal
}
