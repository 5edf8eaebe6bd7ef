package chatmark

import "strings"

// defaults holds the built-in render funcs.
type defaults struct {
	opts Options
}

func (d defaults) style(key string) Style {
	return d.opts.TextStyles[key]
}

func (d defaults) document(p Props) Element {
	return &Document{Children: p.Children}
}

func (d defaults) text(p Props) Element {
	return d.textFor(p.Context, p.Literal)
}

// textFor is the plain text renderer. Text inside an image is left
// unstyled because the image widget styles its own caption.
func (d defaults) textFor(ctx *Context, literal string) Element {
	if ctx.Has(KindImage) {
		return &Text{Content: literal}
	}
	return &Text{Content: literal, Style: d.opts.TextStyles.Resolve(d.opts.BaseStyle, ctx)}
}

func (d defaults) codeSpan(p Props) Element {
	base := d.opts.BaseStyle.Merge(d.style(KindCodeSpan.String()))
	return &Text{
		Content: strings.TrimSuffix(p.Literal, "\n"),
		Style:   d.opts.TextStyles.Resolve(base, p.Context),
	}
}

func (d defaults) codeBlock(p Props) Element {
	content := strings.TrimSuffix(p.Literal, "\n")
	if d.opts.EnableMath && p.Attrs.Language == "latex" {
		return &MathBlock{Content: content}
	}
	return &CodeBlock{
		Language: p.Attrs.Language,
		Content:  content,
		Style:    d.style(KindCodeBlock.String()),
	}
}

func (d defaults) link(p Props) Element {
	return &Link{Destination: p.Attrs.Destination, Title: p.Attrs.Title, Children: p.Children}
}

func (d defaults) image(p Props) Element {
	if d.opts.Images == nil {
		return nil
	}
	interactive := !d.opts.DisableGallery
	if p.Context.Has(KindTable) {
		return &TableImage{Source: p.Attrs.Destination, Interactive: interactive}
	}
	return &Image{
		Source:          p.Attrs.Destination,
		LinkDestination: p.Extra.LinkDestination,
		Size:            p.Extra.Size,
		Display:         fitWidth(p.Extra.Size, d.opts.LayoutWidth),
		Caption:         p.Children,
		ErrorStyle:      d.opts.TextStyles.Resolve(d.opts.BaseStyle, p.Context).Merge(d.style(StyleKeyError)),
		Interactive:     interactive,
	}
}

// fitWidth scales size down to fit width, keeping its aspect ratio.
func fitWidth(size *Size, width int) *Size {
	if size == nil {
		return nil
	}
	out := *size
	if width > 0 && out.Width > width {
		out.Height = out.Height * width / out.Width
		out.Width = width
	}
	return &out
}

func (d defaults) mention(p Props) Element {
	if d.opts.DisableMentions {
		return d.textFor(p.Context, "@"+p.Attrs.Name)
	}
	return &Mention{
		Name:         p.Attrs.Name,
		Style:        d.opts.TextStyles.Resolve(d.opts.BaseStyle, p.Context),
		MentionStyle: d.style(StyleKeyMentionName),
		Highlighted:  p.Context.Has(KindMentionHighlight),
	}
}

func (d defaults) channelMention(p Props) Element {
	if d.opts.DisableChannelLinks {
		return d.textFor(p.Context, "~"+p.Attrs.Name)
	}
	return &ChannelMention{
		Name:      p.Attrs.Name,
		Style:     d.opts.TextStyles.Resolve(d.opts.BaseStyle, p.Context),
		LinkStyle: d.style(KindLink.String()),
	}
}

func (d defaults) hashtag(p Props) Element {
	if d.opts.DisableHashtags {
		return d.textFor(p.Context, "#"+p.Attrs.Name)
	}
	return &Hashtag{Tag: p.Attrs.Name, LinkStyle: d.style(KindLink.String())}
}

func (d defaults) emoji(p Props) Element {
	return &Emoji{
		Name:    p.Attrs.Name,
		Literal: p.Literal,
		Style:   d.opts.TextStyles.Resolve(d.opts.BaseStyle, p.Context),
	}
}

func (d defaults) inlineMath(p Props) Element {
	if !d.opts.EnableInlineMath {
		return d.textFor(p.Context, "$"+p.Literal+"$")
	}
	return &MathInline{
		Content: p.Literal,
		Style:   d.opts.TextStyles.Resolve(d.opts.BaseStyle, p.Context),
	}
}

func (d defaults) paragraph(p Props) Element {
	if len(p.Children) == 0 {
		return nil
	}
	para := &Paragraph{Adjacent: !p.First, Children: p.Children}
	if para.Adjacent {
		para.Style = d.opts.BlockStyles.AdjacentParagraph
	}
	return para
}

func (d defaults) heading(p Props) Element {
	return &Heading{
		Level:      p.Attrs.Level,
		BlockStyle: d.style(HeadingStyleKey(p.Attrs.Level)),
		TextStyle:  d.style(HeadingTextStyleKey(p.Attrs.Level)),
		Children:   p.Children,
	}
}

func (d defaults) blockQuote(p Props) Element {
	return &BlockQuote{IconStyle: d.opts.BlockStyles.QuoteIcon, Children: p.Children}
}

func (d defaults) list(p Props) Element {
	return &List{
		Ordered:  p.Attrs.Ordered,
		Start:    p.Attrs.Start,
		Tight:    p.Attrs.Tight,
		Children: p.Children,
	}
}

func (d defaults) listItem(p Props) Element {
	return &ListItem{
		Level:       p.Context.Count(KindList),
		Index:       p.Extra.Index,
		Continue:    p.Extra.Continue,
		BulletStyle: d.opts.BaseStyle,
		Children:    p.Children,
	}
}

func (d defaults) lineBreak(p Props) Element {
	return &Break{Hard: p.Kind == KindHardBreak}
}

func (d defaults) thematicBreak(p Props) Element {
	return &ThematicBreak{Style: d.opts.BlockStyles.HorizontalRule}
}

func (d defaults) html(p Props) Element {
	text := d.textFor(p.Context, p.Literal)
	if p.Kind == KindHTMLBlock {
		return &Block{Children: []Element{text}}
	}
	return text
}

func (d defaults) table(p Props) Element {
	return &Table{Columns: p.Attrs.Columns, Children: p.Children}
}

func (d defaults) tableRow(p Props) Element {
	return &TableRow{Header: p.Attrs.Header, Children: p.Children}
}

func (d defaults) tableCell(p Props) Element {
	return &TableCell{Header: p.Attrs.Header, Align: p.Attrs.Align, Children: p.Children}
}

func (d defaults) editedIndicator(p Props) Element {
	spacer := ""
	if k, ok := p.Context.Immediate(); ok && k == KindParagraph {
		spacer = " "
	}
	return &EditedIndicator{
		Spacer: spacer,
		Style:  d.opts.BaseStyle.Merge(d.style(KindEditedIndicator.String())),
	}
}
