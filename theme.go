package chatmark

import "strconv"

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so rendered
// messages automatically match any color scheme. A negative index means
// no color.
type Theme struct {
	Text             int // Body text
	Muted            int // Edited indicator, code gutters, image captions
	Accent           int // Headings
	Link             int // Links, channel links, hashtags
	Mention          int // @mentions
	MentionHighlight int // Spans matching the reader's mention keys
	Code             int // Inline code and code blocks
	Error            int // Image load errors
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Text:             -1,
		Muted:            8,
		Accent:           5,
		Link:             4,
		Mention:          6,
		MentionHighlight: 3,
		Code:             2,
		Error:            1,
	}
}

func themeColor(index int) Color {
	if index < 0 {
		return ""
	}
	return Color(strconv.Itoa(index))
}

// BaseStyle returns the body text style for the theme.
func (t Theme) BaseStyle() Style {
	return Style{Foreground: themeColor(t.Text)}
}

// TextStyles returns the default style table for the theme.
func (t Theme) TextStyles() StyleTable {
	table := StyleTable{
		KindEmphasis.String():         {Italic: FlagOn},
		KindStrong.String():           {Bold: FlagOn},
		KindStrikethrough.String():    {Strikethrough: FlagOn},
		KindCodeSpan.String():         {Code: FlagOn, Foreground: themeColor(t.Code)},
		KindCodeBlock.String():        {Code: FlagOn},
		KindLink.String():             {Underline: FlagOn, Foreground: themeColor(t.Link)},
		KindHeading.String():          {Bold: FlagOn, Foreground: themeColor(t.Accent)},
		KindBlockQuote.String():       {Italic: FlagOn},
		KindMentionHighlight.String(): {Bold: FlagOn, Background: themeColor(t.MentionHighlight)},
		KindEditedIndicator.String():  {Faint: FlagOn, Foreground: themeColor(t.Muted)},
		StyleKeyMentionName:           {Foreground: themeColor(t.Mention)},
		StyleKeyError:                 {Italic: FlagOn, Foreground: themeColor(t.Error)},
	}
	scales := []float64{2.0, 1.5, 1.25, 1.0, 1.0, 1.0}
	for level := 1; level <= 6; level++ {
		table[HeadingStyleKey(level)] = Style{}
		text := Style{Bold: FlagOn, Foreground: themeColor(t.Accent), Scale: scales[level-1]}
		if level >= 4 {
			text.Underline = FlagOn
		}
		table[HeadingTextStyleKey(level)] = text
	}
	return table
}

// BlockStyles returns the default container styles for the theme.
func (t Theme) BlockStyles() BlockStyles {
	return BlockStyles{
		QuoteIcon:      Style{Foreground: themeColor(t.Muted)},
		HorizontalRule: Style{Foreground: themeColor(t.Muted), Faint: FlagOn},
	}
}
