package chatmark

// Align is the horizontal alignment of a table cell.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Size is a width and height in layout units.
type Size struct {
	Width  int
	Height int
}

// Attributes holds the kind-specific fields of a Node. Only the fields
// relevant to the node's kind are meaningful.
type Attributes struct {
	// Link and image.
	Destination string
	Title       string

	// Heading.
	Level int

	// Code block.
	Language string

	// List.
	Ordered bool
	Start   int
	Tight   bool

	// List item, assigned by AnnotateListItems.
	Index    int
	Continue bool

	// Mention, channel mention, hashtag and emoji name without its sigil.
	Name string

	// Image.
	LinkDestination string
	Size            *Size

	// Table, row and cell.
	Columns int
	Header  bool
	Align   Align
}

// Node is a markdown tree node. A node has at most one parent; attaching
// it elsewhere detaches it first.
type Node struct {
	Kind    Kind
	Literal string
	Attrs   Attributes

	parent     *Node
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node
}

// NewNode returns a detached node of the given kind.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind}
}

// NewText returns a detached text node.
func NewText(literal string) *Node {
	return &Node{Kind: KindText, Literal: literal}
}

// NewLiteral returns a detached node of kind carrying literal.
func NewLiteral(kind Kind, literal string) *Node {
	return &Node{Kind: kind, Literal: literal}
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return &Node{Kind: KindDocument}
}

func (n *Node) Parent() *Node      { return n.parent }
func (n *Node) FirstChild() *Node  { return n.firstChild }
func (n *Node) LastChild() *Node   { return n.lastChild }
func (n *Node) NextSibling() *Node { return n.next }
func (n *Node) PrevSibling() *Node { return n.prev }

// Children returns a snapshot of the node's children.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.next {
		count++
	}
	return count
}

// AppendChild attaches child as the last child of n and returns n so
// literal trees read naturally in tests.
func (n *Node) AppendChild(child *Node) *Node {
	child.Unlink()
	child.parent = n
	if n.lastChild == nil {
		n.firstChild = child
		n.lastChild = child
		return n
	}
	child.prev = n.lastChild
	n.lastChild.next = child
	n.lastChild = child
	return n
}

// Append attaches each child in order and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// InsertAfter attaches sibling directly after n. n must have a parent.
func (n *Node) InsertAfter(sibling *Node) {
	sibling.Unlink()
	sibling.parent = n.parent
	sibling.prev = n
	sibling.next = n.next
	if n.next != nil {
		n.next.prev = sibling
	} else if n.parent != nil {
		n.parent.lastChild = sibling
	}
	n.next = sibling
}

// InsertBefore attaches sibling directly before n. n must have a parent.
func (n *Node) InsertBefore(sibling *Node) {
	sibling.Unlink()
	sibling.parent = n.parent
	sibling.next = n
	sibling.prev = n.prev
	if n.prev != nil {
		n.prev.next = sibling
	} else if n.parent != nil {
		n.parent.firstChild = sibling
	}
	n.prev = sibling
}

// Unlink detaches n from its parent and siblings. Its own children stay.
func (n *Node) Unlink() {
	if n.prev != nil {
		n.prev.next = n.next
	} else if n.parent != nil {
		n.parent.firstChild = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else if n.parent != nil {
		n.parent.lastChild = n.prev
	}
	n.parent = nil
	n.prev = nil
	n.next = nil
}

// HasAncestor reports whether any ancestor of n has the given kind.
func (n *Node) HasAncestor(kind Kind) bool {
	return n.Ancestor(kind) != nil
}

// Ancestor returns the nearest ancestor of the given kind, or nil.
func (n *Node) Ancestor(kind Kind) *Node {
	for p := n.parent; p != nil; p = p.parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

// shallowClone copies kind, literal and attributes but no links.
func (n *Node) shallowClone() *Node {
	return &Node{Kind: n.Kind, Literal: n.Literal, Attrs: n.Attrs}
}

// WalkStatus controls the traversal in Walk.
type WalkStatus int

const (
	WalkContinue WalkStatus = iota
	WalkSkipChildren
	WalkStop
)

// Walk visits n and its descendants depth-first, calling fn on entering
// and leaving each node. Returning WalkSkipChildren on entering skips the
// node's children (its leaving call still happens).
func Walk(n *Node, fn func(n *Node, entering bool) WalkStatus) WalkStatus {
	status := fn(n, true)
	if status == WalkStop {
		return WalkStop
	}
	if status != WalkSkipChildren {
		for c := n.firstChild; c != nil; {
			next := c.next
			if Walk(c, fn) == WalkStop {
				return WalkStop
			}
			c = next
		}
	}
	return fn(n, false)
}

// PlainText concatenates the literals of every text node under n in
// document order.
func PlainText(n *Node) string {
	var b []byte
	Walk(n, func(n *Node, entering bool) WalkStatus {
		if entering && n.Kind == KindText {
			b = append(b, n.Literal...)
		}
		return WalkContinue
	})
	return string(b)
}
