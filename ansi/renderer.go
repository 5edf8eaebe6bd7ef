package ansi

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmark"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	codeGutter = "│"
	quoteBar   = "│"
	columnSep  = " │ "
)

var faint = lipgloss.NewStyle().Faint(true)

type renderer struct {
	// last holds the most recent ordered-list number per nesting level so
	// continued lists keep counting.
	last map[int]int
}

func newRenderer() *renderer {
	return &renderer{last: map[int]int{}}
}

// lipglossStyle maps a chatmark style onto lipgloss. Scale and Code have no
// terminal equivalent.
func lipglossStyle(s chatmark.Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		st = st.Background(lipgloss.Color(s.Background))
	}
	if s.Bold.On() {
		st = st.Bold(true)
	}
	if s.Italic.On() {
		st = st.Italic(true)
	}
	if s.Underline.On() {
		st = st.Underline(true)
	}
	if s.Strikethrough.On() {
		st = st.Strikethrough(true)
	}
	if s.Faint.On() {
		st = st.Faint(true)
	}
	return st
}

func paint(s chatmark.Style, text string) string {
	if s.IsZero() || text == "" {
		return text
	}
	return lipglossStyle(s).Render(text)
}

// wrap word-wraps s to width and drops the padding lipgloss adds to short
// lines.
func wrap(s string, width int) string {
	wrapped := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// indent prefixes the first line of s with first and every other line with
// rest.
func indent(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = first + line
		} else {
			lines[i] = strings.TrimRight(rest+line, " ")
		}
	}
	return strings.Join(lines, "\n")
}

func isBlock(e chatmark.Element) bool {
	switch e.(type) {
	case *chatmark.Paragraph, *chatmark.Heading, *chatmark.CodeBlock, *chatmark.MathBlock,
		*chatmark.BlockQuote, *chatmark.List, *chatmark.ListItem, *chatmark.Table,
		*chatmark.ThematicBreak, *chatmark.Image, *chatmark.Block:
		return true
	}
	return false
}

// blocks renders a run of elements as stacked blocks separated by sep.
// Stray inline elements are gathered into implicit paragraphs.
func (r *renderer) blocks(elems []chatmark.Element, width int, sep string) string {
	var out []string
	var pending []chatmark.Element
	flush := func() {
		if len(pending) == 0 {
			return
		}
		if s := r.inline(pending); s != "" {
			out = append(out, wrap(s, width))
		}
		pending = nil
	}
	for _, e := range elems {
		if f, ok := e.(*chatmark.Fragment); ok {
			flush()
			if s := r.blocks(f.Children, width, sep); s != "" {
				out = append(out, s)
			}
			continue
		}
		if !isBlock(e) {
			pending = append(pending, e)
			continue
		}
		flush()
		if s := r.block(e, width, sep); s != "" {
			out = append(out, s)
		}
	}
	flush()
	return strings.Join(out, sep)
}

func (r *renderer) block(e chatmark.Element, width int, sep string) string {
	switch e := e.(type) {
	case *chatmark.Paragraph:
		return wrap(r.inline(e.Children), width)

	case *chatmark.Heading:
		marker := paint(e.TextStyle, strings.Repeat("#", e.Level)+" ")
		return wrap(marker+r.inline(e.Children), width)

	case *chatmark.CodeBlock:
		return r.code(e.Language, e.Language, e.Content, e.Style, width)

	case *chatmark.MathBlock:
		return r.code("math", "", e.Content, chatmark.Style{}, width)

	case *chatmark.BlockQuote:
		inner := r.blocks(e.Children, max(width-2, 10), "\n\n")
		bar := paint(e.IconStyle, quoteBar) + " "
		return indent(inner, bar, bar)

	case *chatmark.List:
		return r.list(e, width)

	case *chatmark.ListItem:
		return r.blocks(e.Children, width, sep)

	case *chatmark.Table:
		return r.table(e, width)

	case *chatmark.ThematicBreak:
		return paint(e.Style, strings.Repeat("─", width))

	case *chatmark.Image:
		return r.image(e, width)

	case *chatmark.Block:
		return r.blocks(e.Children, width, sep)
	}
	return ""
}

// code renders a block line by line behind a gutter. Lines are truncated
// rather than reflowed; lang selects syntax highlighting.
func (r *renderer) code(label, lang, content string, style chatmark.Style, width int) string {
	var buf strings.Builder
	if label != "" {
		buf.WriteString(faint.Render(label))
		buf.WriteString("\n")
	}
	gutter := faint.Render(codeGutter) + " "
	avail := max(width-2, 1)
	for i, line := range highlight(content, lang, lipglossStyle(style)) {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(gutter + renderSegments(fit(line, avail)))
	}
	return buf.String()
}

func bullet(level int) string {
	switch (level - 1) % 3 {
	case 1:
		return "* "
	case 2:
		return "+ "
	default:
		return "- "
	}
}

func (r *renderer) list(l *chatmark.List, width int) string {
	sep := "\n\n"
	if l.Tight {
		sep = "\n"
	}
	base := l.Start
	var items []string
	for i, c := range l.Children {
		item, ok := c.(*chatmark.ListItem)
		if !ok {
			continue
		}
		if i == 0 && item.Continue {
			base = r.last[item.Level] + 1
		}
		marker := bullet(item.Level)
		if l.Ordered {
			n := base + item.Index
			r.last[item.Level] = n
			marker = fmt.Sprintf("%d. ", n)
		}
		markerWidth := uniseg.StringWidth(marker)
		body := r.blocks(item.Children, max(width-markerWidth, 10), sep)
		items = append(items, indent(body, paint(item.BulletStyle, marker), strings.Repeat(" ", markerWidth)))
	}
	return strings.Join(items, sep)
}

func (r *renderer) table(t *chatmark.Table, width int) string {
	var rows [][]string
	var header []bool
	var aligns []chatmark.Align
	cols := t.Columns
	for _, c := range t.Children {
		row, ok := c.(*chatmark.TableRow)
		if !ok {
			continue
		}
		var cells []string
		for i, cc := range row.Children {
			cell, ok := cc.(*chatmark.TableCell)
			if !ok {
				continue
			}
			cells = append(cells, plain(cell.Children))
			if i >= len(aligns) {
				aligns = append(aligns, cell.Align)
			}
		}
		cols = max(cols, len(cells))
		rows = append(rows, cells)
		header = append(header, row.Header)
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], uniseg.StringWidth(cell))
		}
	}
	sepWidth := uniseg.StringWidth(columnSep) * (cols - 1)
	budget := max((width-sepWidth)/cols, 3)
	total := sepWidth
	for _, w := range widths {
		total += w
	}
	if total > width {
		for i := range widths {
			widths[i] = min(widths[i], budget)
		}
	}

	var lines []string
	for ri, row := range rows {
		parts := make([]string, cols)
		for i := range parts {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			align := chatmark.AlignNone
			if i < len(aligns) {
				align = aligns[i]
			}
			cell = pad(runewidth.Truncate(cell, widths[i], "…"), widths[i], align)
			if header[ri] {
				cell = lipgloss.NewStyle().Bold(true).Render(cell)
			}
			parts[i] = cell
		}
		lines = append(lines, strings.TrimRight(strings.Join(parts, faint.Render(columnSep)), " "))
		if header[ri] {
			rule := make([]string, cols)
			for i, w := range widths {
				rule[i] = strings.Repeat("─", w)
			}
			lines = append(lines, faint.Render(strings.Join(rule, "─┼─")))
		}
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int, align chatmark.Align) string {
	gap := width - uniseg.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case chatmark.AlignRight:
		return strings.Repeat(" ", gap) + s
	case chatmark.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

func (r *renderer) image(img *chatmark.Image, width int) string {
	label := "[image]"
	if caption := plain(img.Caption); caption != "" {
		label = "[image: " + caption + "]"
	}
	if img.Size == nil {
		return wrap(paint(img.ErrorStyle, label+" unavailable: "+img.Source), width)
	}
	desc := label + " " + img.Source
	if img.Display != nil {
		desc += fmt.Sprintf(" (%dx%d)", img.Display.Width, img.Display.Height)
	}
	if img.LinkDestination != "" {
		desc += " -> " + img.LinkDestination
	}
	return wrap(faint.Render(desc), width)
}

// inline renders elements as one styled run.
func (r *renderer) inline(elems []chatmark.Element) string {
	var buf strings.Builder
	for _, e := range elems {
		r.renderInline(e, &buf)
	}
	return buf.String()
}

func (r *renderer) renderInline(e chatmark.Element, buf *strings.Builder) {
	switch e := e.(type) {
	case *chatmark.Text:
		buf.WriteString(paint(e.Style, e.Content))

	case *chatmark.Fragment:
		buf.WriteString(r.inline(e.Children))

	case *chatmark.Link:
		buf.WriteString(r.inline(e.Children))
		if plain(e.Children) != e.Destination && strings.TrimPrefix(e.Destination, "mailto:") != plain(e.Children) {
			buf.WriteString(" ")
			buf.WriteString(faint.Render("(" + e.Destination + ")"))
		}

	case *chatmark.Mention:
		buf.WriteString(paint(e.Style.Merge(e.MentionStyle), "@"+e.Name))

	case *chatmark.ChannelMention:
		buf.WriteString(paint(e.Style.Merge(e.LinkStyle), "~"+e.Name))

	case *chatmark.Hashtag:
		buf.WriteString(paint(e.LinkStyle, "#"+e.Tag))

	case *chatmark.Emoji:
		buf.WriteString(paint(e.Style, glyph(e.Name, e.Literal)))

	case *chatmark.MathInline:
		buf.WriteString(paint(e.Style, e.Content))

	case *chatmark.Break:
		if e.Hard {
			buf.WriteString("\n")
		} else {
			buf.WriteString(" ")
		}

	case *chatmark.EditedIndicator:
		buf.WriteString(e.Spacer)
		buf.WriteString(paint(e.Style, "(edited)"))

	case *chatmark.TableImage:
		buf.WriteString(faint.Render("[image]"))

	default:
		if isBlock(e) {
			buf.WriteString(r.block(e, 80, "\n"))
			return
		}
		buf.WriteString(r.inline(chatmark.Children(e)))
	}
}

// plain returns the unstyled text of elements.
func plain(elems []chatmark.Element) string {
	var buf strings.Builder
	for _, e := range elems {
		switch e := e.(type) {
		case *chatmark.Text:
			buf.WriteString(e.Content)
		case *chatmark.Mention:
			buf.WriteString("@" + e.Name)
		case *chatmark.ChannelMention:
			buf.WriteString("~" + e.Name)
		case *chatmark.Hashtag:
			buf.WriteString("#" + e.Tag)
		case *chatmark.Emoji:
			buf.WriteString(glyph(e.Name, e.Literal))
		case *chatmark.MathInline:
			buf.WriteString(e.Content)
		case *chatmark.Break:
			buf.WriteString(" ")
		case *chatmark.EditedIndicator:
			buf.WriteString(e.Spacer + "(edited)")
		case *chatmark.TableImage:
			buf.WriteString("[image]")
		default:
			buf.WriteString(plain(chatmark.Children(e)))
		}
	}
	return buf.String()
}
