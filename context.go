package chatmark

// Context is the stack of ancestor kinds from the document root down to,
// but not including, the node being rendered. It is immutable: Push
// returns a new stack sharing the old one, so sibling subtrees never see
// each other's entries. The nil *Context is the empty stack.
type Context struct {
	kind   Kind
	parent *Context
	depth  int
}

// Push returns the stack extended with kind as the innermost entry.
func (c *Context) Push(kind Kind) *Context {
	return &Context{kind: kind, parent: c, depth: c.Depth() + 1}
}

// Depth returns the number of entries.
func (c *Context) Depth() int {
	if c == nil {
		return 0
	}
	return c.depth
}

// Immediate returns the innermost kind, the parent of the current node.
func (c *Context) Immediate() (Kind, bool) {
	if c == nil {
		return 0, false
	}
	return c.kind, true
}

// Kinds returns the entries outermost first.
func (c *Context) Kinds() []Kind {
	kinds := make([]Kind, c.Depth())
	for e := c; e != nil; e = e.parent {
		kinds[e.depth-1] = e.kind
	}
	return kinds
}

// Has reports whether kind appears anywhere in the stack.
func (c *Context) Has(kind Kind) bool {
	for e := c; e != nil; e = e.parent {
		if e.kind == kind {
			return true
		}
	}
	return false
}

// Count returns how many entries have the given kind.
func (c *Context) Count(kind Kind) int {
	n := 0
	for e := c; e != nil; e = e.parent {
		if e.kind == kind {
			n++
		}
	}
	return n
}
