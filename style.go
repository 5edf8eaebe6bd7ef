package chatmark

import "fmt"

// Flag is a tri-state style switch. FlagUnset leaves the value inherited
// from earlier styles in a merge.
type Flag uint8

const (
	FlagUnset Flag = iota
	FlagOn
	FlagOff
)

// On reports whether the flag is explicitly enabled.
func (f Flag) On() bool { return f == FlagOn }

// Color is a terminal color in lipgloss notation: an ANSI index such as
// "5" or a hex value such as "#ff8800". The empty string is unset.
type Color string

// Style is a set of text attributes. The zero Style sets nothing.
type Style struct {
	Foreground    Color
	Background    Color
	Bold          Flag
	Italic        Flag
	Underline     Flag
	Strikethrough Flag
	Faint         Flag
	Code          Flag

	// Scale is a size multiplier relative to body text; zero is unset.
	Scale float64
}

// Merge returns s overridden by every field o sets.
func (s Style) Merge(o Style) Style {
	if o.Foreground != "" {
		s.Foreground = o.Foreground
	}
	if o.Background != "" {
		s.Background = o.Background
	}
	if o.Bold != FlagUnset {
		s.Bold = o.Bold
	}
	if o.Italic != FlagUnset {
		s.Italic = o.Italic
	}
	if o.Underline != FlagUnset {
		s.Underline = o.Underline
	}
	if o.Strikethrough != FlagUnset {
		s.Strikethrough = o.Strikethrough
	}
	if o.Faint != FlagUnset {
		s.Faint = o.Faint
	}
	if o.Code != FlagUnset {
		s.Code = o.Code
	}
	if o.Scale != 0 {
		s.Scale = o.Scale
	}
	return s
}

// IsZero reports whether the style sets nothing.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Concat merges layers onto base in order; later layers win.
func Concat(base Style, layers ...Style) Style {
	for _, l := range layers {
		base = base.Merge(l)
	}
	return base
}

// StyleTable maps a kind name (see Kind.String) or one of the extra keys
// below to a style.
type StyleTable map[string]Style

// Extra keys understood by the default renderers.
const (
	StyleKeyError       = "error"
	StyleKeyMentionName = "mention_name"
)

// HeadingStyleKey is the block style key for a heading level.
func HeadingStyleKey(level int) string {
	return fmt.Sprintf("heading%d", level)
}

// HeadingTextStyleKey is the text style key for a heading level.
func HeadingTextStyleKey(level int) string {
	return fmt.Sprintf("heading%d_text", level)
}

// Resolve computes the effective style of a node whose ancestors are ctx:
// base, then the entry of every ancestor kind that has one, outermost
// first.
func (t StyleTable) Resolve(base Style, ctx *Context) Style {
	for _, k := range ctx.Kinds() {
		if s, ok := t[k.String()]; ok {
			base = base.Merge(s)
		}
	}
	return base
}

// BlockStyles are the container styles that do not come from context.
type BlockStyles struct {
	AdjacentParagraph Style
	QuoteIcon         Style
	HorizontalRule    Style
}
