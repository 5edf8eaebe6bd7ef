package chatmark

// Element is a sealed interface representing a rendered display primitive.
// The unexported marker method prevents external implementations.
type Element interface {
	element()
}

// Document is the root of a rendered message.
type Document struct {
	Children []Element
}

// Fragment is a run of elements with no container of its own. The
// renderer splices fragments into their parent's children.
type Fragment struct {
	Children []Element
}

// Text is a styled run of text.
type Text struct {
	Content string
	Style   Style
}

// Paragraph is a block of inline content. Adjacent is set for every
// paragraph that follows a sibling, and Style then carries the
// adjacent-paragraph block style.
type Paragraph struct {
	Adjacent bool
	Style    Style
	Children []Element
}

// Heading is a block holding its children as a single text run.
type Heading struct {
	Level      int
	BlockStyle Style
	TextStyle  Style
	Children   []Element
}

// CodeBlock is preformatted text.
type CodeBlock struct {
	Language string
	Content  string
	Style    Style
}

// MathBlock is a block of LaTeX source for a math typesetter.
type MathBlock struct {
	Content string
}

// MathInline is inline LaTeX source.
type MathInline struct {
	Content string
	Style   Style
}

// BlockQuote is a quoted block.
type BlockQuote struct {
	IconStyle Style
	Children  []Element
}

// List holds ListItem children.
type List struct {
	Ordered  bool
	Start    int
	Tight    bool
	Children []Element
}

// ListItem is one entry of a List. Level is the number of lists
// enclosing the item, starting at 1.
type ListItem struct {
	Level       int
	Index       int
	Continue    bool
	BulletStyle Style
	Children    []Element
}

// Link wraps its children with a destination for the host's link handler.
type Link struct {
	Destination string
	Title       string
	Children    []Element
}

// Image is a block-level image reference.
type Image struct {
	Source          string
	LinkDestination string
	// Size is the natural size, when known.
	Size *Size
	// Display is Size scaled down to the layout width.
	Display     *Size
	Caption     []Element
	ErrorStyle  Style
	Interactive bool
}

// TableImage is an image inside a table, shown as a link.
type TableImage struct {
	Source      string
	Interactive bool
}

// Mention is an @mention of a user or group.
type Mention struct {
	Name         string
	Style        Style
	MentionStyle Style
	Highlighted  bool
}

// ChannelMention is a ~channel link.
type ChannelMention struct {
	Name      string
	Style     Style
	LinkStyle Style
}

// Hashtag is a #tag link.
type Hashtag struct {
	Tag       string
	LinkStyle Style
}

// Emoji is a named emoji; Literal is its source spelling.
type Emoji struct {
	Name    string
	Literal string
	Style   Style
}

// Table lays out rows in Columns columns.
type Table struct {
	Columns  int
	Children []Element
}

// TableRow holds TableCell children.
type TableRow struct {
	Header   bool
	Children []Element
}

// TableCell is one cell of a row.
type TableCell struct {
	Header   bool
	Align    Align
	Children []Element
}

// Break is a line break; soft breaks may be reflowed by the host.
type Break struct {
	Hard bool
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct {
	Style Style
}

// Block wraps inline content that must start on its own line, such as
// an HTML block shown as text.
type Block struct {
	Children []Element
}

// EditedIndicator marks a message as edited. Spacer separates it from
// preceding paragraph text.
type EditedIndicator struct {
	Spacer string
	Style  Style
}

func (*Document) element()        {}
func (*Fragment) element()        {}
func (*Text) element()            {}
func (*Paragraph) element()       {}
func (*Heading) element()         {}
func (*CodeBlock) element()       {}
func (*MathBlock) element()       {}
func (*MathInline) element()      {}
func (*BlockQuote) element()      {}
func (*List) element()            {}
func (*ListItem) element()        {}
func (*Link) element()            {}
func (*Image) element()           {}
func (*TableImage) element()      {}
func (*Mention) element()         {}
func (*ChannelMention) element()  {}
func (*Hashtag) element()         {}
func (*Emoji) element()           {}
func (*Table) element()           {}
func (*TableRow) element()        {}
func (*TableCell) element()       {}
func (*Break) element()           {}
func (*ThematicBreak) element()   {}
func (*Block) element()           {}
func (*EditedIndicator) element() {}

// Interface compliance checks.
var (
	_ Element = (*Document)(nil)
	_ Element = (*Fragment)(nil)
	_ Element = (*Text)(nil)
	_ Element = (*Paragraph)(nil)
	_ Element = (*Heading)(nil)
	_ Element = (*CodeBlock)(nil)
	_ Element = (*MathBlock)(nil)
	_ Element = (*MathInline)(nil)
	_ Element = (*BlockQuote)(nil)
	_ Element = (*List)(nil)
	_ Element = (*ListItem)(nil)
	_ Element = (*Link)(nil)
	_ Element = (*Image)(nil)
	_ Element = (*TableImage)(nil)
	_ Element = (*Mention)(nil)
	_ Element = (*ChannelMention)(nil)
	_ Element = (*Hashtag)(nil)
	_ Element = (*Emoji)(nil)
	_ Element = (*Table)(nil)
	_ Element = (*TableRow)(nil)
	_ Element = (*TableCell)(nil)
	_ Element = (*Break)(nil)
	_ Element = (*ThematicBreak)(nil)
	_ Element = (*Block)(nil)
	_ Element = (*EditedIndicator)(nil)
)

// Children returns the child elements of containers and nil otherwise.
func Children(e Element) []Element {
	switch e := e.(type) {
	case *Document:
		return e.Children
	case *Fragment:
		return e.Children
	case *Paragraph:
		return e.Children
	case *Heading:
		return e.Children
	case *BlockQuote:
		return e.Children
	case *List:
		return e.Children
	case *ListItem:
		return e.Children
	case *Link:
		return e.Children
	case *Image:
		return e.Caption
	case *Table:
		return e.Children
	case *TableRow:
		return e.Children
	case *TableCell:
		return e.Children
	case *Block:
		return e.Children
	default:
		return nil
	}
}
