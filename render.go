package chatmark

import "fmt"

// Props is what a RenderFunc receives for one node: its raw literal and
// attributes, its ancestor context and its already-rendered children.
// Renderers never see child nodes.
type Props struct {
	Kind     Kind
	Literal  string
	Attrs    Attributes
	Context  *Context
	Children []Element
	// First is set when the node has no previous sibling.
	First bool
	Extra Extra
}

// Extra is per-node metadata available to renderers and, through
// Result.Extra, to the host's widgets.
type Extra struct {
	Continue bool
	Index    int

	// Image only.
	Caption         []Element
	LinkDestination string
	Size            *Size
}

// RenderFunc renders one node. A nil Element renders nothing.
type RenderFunc func(p Props) Element

// Forward returns children unchanged as a Fragment, for kinds that add no
// structure of their own.
func Forward(p Props) Element {
	return &Fragment{Children: p.Children}
}

// RendererOption customizes a Renderer.
type RendererOption func(*Renderer)

// WithRenderFunc replaces the render func for one kind.
func WithRenderFunc(kind Kind, fn RenderFunc) RendererOption {
	return func(r *Renderer) {
		if kind < kindCount {
			r.funcs[kind] = fn
		}
	}
}

// Renderer turns a transformed tree into elements. It holds only
// configuration, so one Renderer may serve concurrent calls.
type Renderer struct {
	opts  Options
	funcs [kindCount]RenderFunc
}

// NewRenderer builds a renderer with an entry for every kind. It fails if
// an option leaves any kind without a render func.
func NewRenderer(opts Options, options ...RendererOption) (*Renderer, error) {
	if opts.TextStyles == nil {
		opts.TextStyles = StyleTable{}
	}
	r := &Renderer{opts: opts}
	d := defaults{opts: opts}
	r.funcs = [kindCount]RenderFunc{
		KindDocument:         d.document,
		KindText:             d.text,
		KindEmphasis:         Forward,
		KindStrong:           Forward,
		KindStrikethrough:    Forward,
		KindCodeSpan:         d.codeSpan,
		KindLink:             d.link,
		KindImage:            d.image,
		KindMention:          d.mention,
		KindChannelMention:   d.channelMention,
		KindHashtag:          d.hashtag,
		KindEmoji:            d.emoji,
		KindInlineMath:       d.inlineMath,
		KindParagraph:        d.paragraph,
		KindHeading:          d.heading,
		KindCodeBlock:        d.codeBlock,
		KindBlockQuote:       d.blockQuote,
		KindList:             d.list,
		KindListItem:         d.listItem,
		KindHardBreak:        d.lineBreak,
		KindSoftBreak:        d.lineBreak,
		KindThematicBreak:    d.thematicBreak,
		KindHTMLBlock:        d.html,
		KindHTMLInline:       d.html,
		KindTable:            d.table,
		KindTableRow:         d.tableRow,
		KindTableCell:        d.tableCell,
		KindMentionHighlight: Forward,
		KindEditedIndicator:  d.editedIndicator,
	}
	for _, o := range options {
		o(r)
	}
	for k, fn := range r.funcs {
		if fn == nil {
			return nil, fmt.Errorf("kind %s: %w", Kind(k), ErrMissingRenderFunc)
		}
	}
	return r, nil
}

// Result is a rendered document plus the per-element side channel.
type Result struct {
	Root   *Document
	extras map[Element]Extra
}

// Extra returns the metadata recorded for a rendered element.
func (r *Result) Extra(e Element) (Extra, bool) {
	x, ok := r.extras[e]
	return x, ok
}

// Render walks doc in post-order and returns the rendered document.
func (r *Renderer) Render(doc *Node) (*Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	res := &Result{extras: make(map[Element]Extra)}
	el := r.renderNode(res, doc, nil)
	root, ok := el.(*Document)
	if !ok {
		root = &Document{Children: appendElement(nil, el)}
	}
	res.Root = root
	return res, nil
}

// RenderNode renders a single subtree with the given ancestor context.
// It is useful to hosts re-rendering a fragment and to tests.
func (r *Renderer) RenderNode(n *Node, ctx *Context) (Element, *Result) {
	res := &Result{extras: make(map[Element]Extra)}
	return r.renderNode(res, n, ctx), res
}

func (r *Renderer) renderNode(res *Result, n *Node, ctx *Context) Element {
	inner := ctx.Push(n.Kind)
	var children []Element
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		children = appendElement(children, r.renderNode(res, c, inner))
	}
	extra := Extra{Continue: n.Attrs.Continue, Index: n.Attrs.Index}
	if n.Kind == KindImage {
		extra.Caption = children
		extra.LinkDestination = n.Attrs.LinkDestination
		extra.Size = r.imageSize(n)
	}
	el := r.funcs[n.Kind](Props{
		Kind:     n.Kind,
		Literal:  n.Literal,
		Attrs:    n.Attrs,
		Context:  ctx,
		Children: children,
		First:    n.PrevSibling() == nil,
		Extra:    extra,
	})
	if el == nil {
		return nil
	}
	if _, ok := el.(*Fragment); !ok {
		res.extras[el] = extra
	}
	return el
}

func (r *Renderer) imageSize(n *Node) *Size {
	if n.Attrs.Size != nil {
		s := *n.Attrs.Size
		return &s
	}
	if md, ok := r.opts.Images[n.Attrs.Destination]; ok && md.Width > 0 && md.Height > 0 {
		return &Size{Width: md.Width, Height: md.Height}
	}
	return nil
}

// appendElement appends el, splicing fragments and dropping nils.
func appendElement(dst []Element, el Element) []Element {
	switch e := el.(type) {
	case nil:
		return dst
	case *Fragment:
		for _, c := range e.Children {
			dst = appendElement(dst, c)
		}
		return dst
	default:
		return append(dst, el)
	}
}
