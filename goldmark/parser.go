// Package goldmark parses chat markdown into chatmark trees using goldmark
// with the GFM table, strikethrough and linkify extensions, GitHub emoji
// shortcodes and the chat inline constructs.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/chatmark"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	emoji "github.com/yuin/goldmark-emoji"
	emojiast "github.com/yuin/goldmark-emoji/ast"
)

// Parser implements chatmark.Parser. It is safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// Interface compliance check.
var _ chatmark.Parser = (*Parser)(nil)

// NewParser returns a parser configured for chat messages.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
			emoji.Emoji,
			Chat,
		)),
	}
}

// Parse parses source into a document tree. Link destinations rejected by
// cfg's URL filter are unwrapped to their text.
func (p *Parser) Parse(source string, cfg chatmark.ParseConfig) (*chatmark.Node, error) {
	if cfg.MinimumHashtagLength <= 0 {
		cfg.MinimumHashtagLength = chatmark.DefaultMinimumHashtagLength
	}
	src := []byte(source)
	pc := parser.NewContext()
	pc.Set(configKey, cfg)
	root := p.md.Parser().Parse(text.NewReader(src), parser.WithContext(pc))

	c := &converter{source: src, cfg: cfg}
	doc := chatmark.NewDocument()
	c.children(root, doc)
	return doc, nil
}

type converter struct {
	source []byte
	cfg    chatmark.ParseConfig
}

func (c *converter) children(n ast.Node, parent *chatmark.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.convert(child, parent)
	}
}

// wrap appends a node of kind to parent and converts n's children into it.
func (c *converter) wrap(n ast.Node, parent *chatmark.Node, kind chatmark.Kind) *chatmark.Node {
	out := chatmark.NewNode(kind)
	parent.AppendChild(out)
	c.children(n, out)
	return out
}

func (c *converter) convert(n ast.Node, parent *chatmark.Node) {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		c.wrap(n, parent, chatmark.KindParagraph)

	case *ast.Heading:
		c.wrap(n, parent, chatmark.KindHeading).Attrs.Level = n.Level

	case *ast.ThematicBreak:
		parent.AppendChild(chatmark.NewNode(chatmark.KindThematicBreak))

	case *ast.FencedCodeBlock:
		code := chatmark.NewLiteral(chatmark.KindCodeBlock, c.lines(n.Lines()))
		code.Attrs.Language = string(n.Language(c.source))
		parent.AppendChild(code)

	case *ast.CodeBlock:
		parent.AppendChild(chatmark.NewLiteral(chatmark.KindCodeBlock, c.lines(n.Lines())))

	case *ast.Blockquote:
		c.wrap(n, parent, chatmark.KindBlockQuote)

	case *ast.List:
		list := c.wrap(n, parent, chatmark.KindList)
		list.Attrs.Ordered = n.IsOrdered()
		list.Attrs.Start = n.Start
		list.Attrs.Tight = n.IsTight

	case *ast.ListItem:
		c.wrap(n, parent, chatmark.KindListItem)

	case *ast.HTMLBlock:
		literal := c.lines(n.Lines())
		if n.HasClosure() {
			literal += string(n.ClosureLine.Value(c.source))
		}
		parent.AppendChild(chatmark.NewLiteral(chatmark.KindHTMLBlock, literal))

	case *extast.Table:
		c.wrap(n, parent, chatmark.KindTable).Attrs.Columns = len(n.Alignments)

	case *extast.TableHeader:
		c.wrap(n, parent, chatmark.KindTableRow).Attrs.Header = true

	case *extast.TableRow:
		c.wrap(n, parent, chatmark.KindTableRow)

	case *extast.TableCell:
		cell := c.wrap(n, parent, chatmark.KindTableCell)
		cell.Attrs.Align = alignment(n.Alignment)
		_, cell.Attrs.Header = n.Parent().(*extast.TableHeader)

	case *ast.Text:
		value := string(n.Segment.Value(c.source))
		if value != "" {
			parent.AppendChild(chatmark.NewText(value))
		}
		switch {
		case n.HardLineBreak():
			parent.AppendChild(chatmark.NewNode(chatmark.KindHardBreak))
		case n.SoftLineBreak():
			parent.AppendChild(chatmark.NewNode(chatmark.KindSoftBreak))
		}

	case *ast.String:
		if len(n.Value) > 0 {
			parent.AppendChild(chatmark.NewText(string(n.Value)))
		}

	case *ast.Emphasis:
		kind := chatmark.KindEmphasis
		if n.Level >= 2 {
			kind = chatmark.KindStrong
		}
		c.wrap(n, parent, kind)

	case *extast.Strikethrough:
		c.wrap(n, parent, chatmark.KindStrikethrough)

	case *ast.CodeSpan:
		parent.AppendChild(chatmark.NewLiteral(chatmark.KindCodeSpan, c.codeSpan(n)))

	case *ast.Link:
		dest := string(n.Destination)
		if !c.cfg.AllowsURL(dest) {
			c.children(n, parent)
			return
		}
		link := c.wrap(n, parent, chatmark.KindLink)
		link.Attrs.Destination = dest
		link.Attrs.Title = string(n.Title)

	case *ast.AutoLink:
		label := string(n.Label(c.source))
		dest := string(n.URL(c.source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(dest), "mailto:") {
			dest = "mailto:" + dest
		}
		if !c.cfg.AllowsURL(dest) {
			parent.AppendChild(chatmark.NewText(label))
			return
		}
		link := chatmark.NewNode(chatmark.KindLink)
		link.Attrs.Destination = dest
		parent.AppendChild(link.AppendChild(chatmark.NewText(label)))

	case *ast.Image:
		img := c.wrap(n, parent, chatmark.KindImage)
		img.Attrs.Destination = string(n.Destination)
		img.Attrs.Title = string(n.Title)

	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(c.source))
		}
		parent.AppendChild(chatmark.NewLiteral(chatmark.KindHTMLInline, b.String()))

	case *Mention:
		m := chatmark.NewNode(chatmark.KindMention)
		m.Attrs.Name = n.Name
		parent.AppendChild(m)

	case *ChannelMention:
		m := chatmark.NewNode(chatmark.KindChannelMention)
		m.Attrs.Name = n.Name
		parent.AppendChild(m)

	case *Hashtag:
		h := chatmark.NewNode(chatmark.KindHashtag)
		h.Attrs.Name = n.Tag
		parent.AppendChild(h)

	case *emojiast.Emoji:
		name := string(n.ShortName)
		e := chatmark.NewLiteral(chatmark.KindEmoji, ":"+name+":")
		e.Attrs.Name = name
		parent.AppendChild(e)

	case *InlineMath:
		parent.AppendChild(chatmark.NewLiteral(chatmark.KindInlineMath, n.Formula))

	default:
		c.children(n, parent)
	}
}

func (c *converter) lines(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(c.source))
	}
	return buf.String()
}

// codeSpan joins the raw segments of a code span, turning line endings
// into spaces.
func (c *converter) codeSpan(n *ast.CodeSpan) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		var value []byte
		switch t := child.(type) {
		case *ast.Text:
			value = t.Segment.Value(c.source)
		case *ast.String:
			value = t.Value
		}
		if v, ok := bytes.CutSuffix(value, []byte("\n")); ok {
			buf.Write(v)
			buf.WriteByte(' ')
			continue
		}
		buf.Write(value)
	}
	return buf.String()
}

func alignment(a extast.Alignment) chatmark.Align {
	switch a {
	case extast.AlignLeft:
		return chatmark.AlignLeft
	case extast.AlignCenter:
		return chatmark.AlignCenter
	case extast.AlignRight:
		return chatmark.AlignRight
	default:
		return chatmark.AlignNone
	}
}
