package ansi

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var codeStyle = styles.Get("monokai")

// segment is a run of code text sharing one style.
type segment struct {
	text  string
	style lipgloss.Style
}

// highlight splits content into lines of styled segments. Languages chroma
// does not know produce one unstyled segment per line.
func highlight(content, lang string, base lipgloss.Style) [][]segment {
	src := strings.Split(content, "\n")
	lines := make([][]segment, 1, len(src))

	lexer := lexerFor(lang)
	if lexer == nil {
		return plainLines(src, base)
	}
	it, err := lexer.Tokenise(nil, content)
	if err != nil {
		return plainLines(src, base)
	}
	for _, tok := range it.Tokens() {
		style := tokenStyle(tok.Type).Inherit(base)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], segment{text: part, style: style})
			}
		}
	}
	// Lexers may add a trailing newline.
	if len(lines) > len(src) {
		lines = lines[:len(src)]
	}
	return lines
}

func lexerFor(lang string) chroma.Lexer {
	if lang == "" {
		return nil
	}
	l := lexers.Get(lang)
	if l == nil {
		return nil
	}
	return chroma.Coalesce(l)
}

func plainLines(src []string, base lipgloss.Style) [][]segment {
	lines := make([][]segment, len(src))
	for i, line := range src {
		if line != "" {
			lines[i] = []segment{{text: line, style: base}}
		}
	}
	return lines
}

func tokenStyle(tt chroma.TokenType) lipgloss.Style {
	entry := codeStyle.Get(tt)
	st := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

// fit expands tabs and truncates a line of segments to width columns,
// ending with an ellipsis when anything was cut.
func fit(line []segment, width int) []segment {
	total := 0
	for i := range line {
		line[i].text = strings.ReplaceAll(line[i].text, "\t", "    ")
		total += runewidth.StringWidth(line[i].text)
	}
	if total <= width {
		return line
	}
	var out []segment
	left := width - 1
	for _, seg := range line {
		w := runewidth.StringWidth(seg.text)
		if w <= left {
			out = append(out, seg)
			left -= w
			continue
		}
		if left > 0 {
			out = append(out, segment{text: runewidth.Truncate(seg.text, left, ""), style: seg.style})
		}
		break
	}
	return append(out, segment{text: "…", style: faint})
}

func renderSegments(line []segment) string {
	var b strings.Builder
	for _, seg := range line {
		b.WriteString(seg.style.Render(seg.text))
	}
	return b.String()
}
