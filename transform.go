package chatmark

import "unicode/utf8"

// Transform applies the structural passes in their required order:
// text coalescing, list-item annotation, image hoisting and, when keys are
// given, mention highlighting. Each pass is safe to re-apply.
func Transform(doc *Node, keys []MentionKey) *Node {
	doc = CoalesceText(doc)
	doc = AnnotateListItems(doc)
	doc = HoistImages(doc)
	if len(keys) > 0 {
		doc = HighlightMentions(doc, keys)
	}
	return doc
}

// CoalesceText merges runs of adjacent text siblings into one node whose
// literal is their concatenation. Text separated by any other node is
// left alone.
func CoalesceText(doc *Node) *Node {
	Walk(doc, func(n *Node, entering bool) WalkStatus {
		if !entering {
			return WalkContinue
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if c.Kind != KindText {
				continue
			}
			for next := c.NextSibling(); next != nil && next.Kind == KindText; next = c.NextSibling() {
				c.Literal += next.Literal
				next.Unlink()
			}
		}
		return WalkContinue
	})
	return doc
}

// AnnotateListItems numbers the items of every list from zero and marks
// whether the list continues an earlier list of the same ordering that
// was interrupted only by non-list blocks.
func AnnotateListItems(doc *Node) *Node {
	Walk(doc, func(n *Node, entering bool) WalkStatus {
		if !entering || n.Kind != KindList {
			return WalkContinue
		}
		cont := continuesList(n)
		i := 0
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			if item.Kind != KindListItem {
				continue
			}
			item.Attrs.Index = i
			item.Attrs.Continue = cont
			i++
		}
		return WalkContinue
	})
	return doc
}

func continuesList(list *Node) bool {
	interrupted := false
	for prev := list.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if prev.Kind == KindList {
			return interrupted && prev.Attrs.Ordered == list.Attrs.Ordered
		}
		interrupted = true
	}
	return false
}

// HoistImages moves every image that sits inside a paragraph out to be a
// sibling of that paragraph. Text before the image stays in the original
// paragraph and text after it moves to a new paragraph following the
// image. Images inside tables are left in place.
func HoistImages(doc *Node) *Node {
	var images []*Node
	Walk(doc, func(n *Node, entering bool) WalkStatus {
		if !entering {
			return WalkContinue
		}
		switch n.Kind {
		case KindTable:
			return WalkSkipChildren
		case KindImage:
			if n.HasAncestor(KindParagraph) {
				images = append(images, n)
			}
			return WalkSkipChildren
		}
		return WalkContinue
	})
	for _, img := range images {
		hoistImage(img)
	}
	return doc
}

func hoistImage(img *Node) {
	para := img.Ancestor(KindParagraph)
	if para == nil || para.Parent() == nil {
		return
	}
	if parent := img.Parent(); parent.Kind == KindLink && img.Attrs.LinkDestination == "" {
		img.Attrs.LinkDestination = parent.Attrs.Destination
	}

	// Build the part of the paragraph that follows the image, cloning each
	// inline wrapper between the image and the paragraph.
	var after *Node
	for cur := img; cur != para; cur = cur.Parent() {
		part := cur.Parent().shallowClone()
		if after != nil && after.FirstChild() != nil {
			part.AppendChild(after)
		}
		for s := cur.NextSibling(); s != nil; {
			next := s.NextSibling()
			part.AppendChild(s)
			s = next
		}
		after = part
	}

	wrapper := img.Parent()
	img.Unlink()
	for wrapper != para && wrapper.FirstChild() == nil {
		up := wrapper.Parent()
		wrapper.Unlink()
		wrapper = up
	}

	trimBreaks(para, false)
	trimBreaks(after, true)

	para.InsertAfter(img)
	if after.FirstChild() != nil {
		img.InsertAfter(after)
	}
	if para.FirstChild() == nil {
		para.Unlink()
	}
}

// trimBreaks removes line breaks left dangling at the split edge of a
// paragraph half: its leading edge when leading is set, else its trailing.
func trimBreaks(para *Node, leading bool) {
	for {
		edge := para.LastChild()
		if leading {
			edge = para.FirstChild()
		}
		if edge == nil || (edge.Kind != KindSoftBreak && edge.Kind != KindHardBreak) {
			return
		}
		edge.Unlink()
	}
}

// HighlightMentions wraps every occurrence of a mention key in a
// mention_highlight node. Matching respects word boundaries and prefers
// the longest key at any position. The leaf text of the document is
// unchanged; matched text only moves into a wrapper.
func HighlightMentions(doc *Node, keys []MentionKey) *Node {
	m := newMentionMatcher(keys)
	if m.empty() {
		return doc
	}
	var texts, mentions []*Node
	Walk(doc, func(n *Node, entering bool) WalkStatus {
		if !entering {
			return WalkContinue
		}
		switch n.Kind {
		case KindMentionHighlight:
			return WalkSkipChildren
		case KindText:
			texts = append(texts, n)
		case KindMention:
			mentions = append(mentions, n)
		}
		return WalkContinue
	})
	for _, t := range texts {
		highlightText(t, m)
	}
	for _, n := range mentions {
		if m.matchesName("@" + n.Attrs.Name) {
			wrapper := NewNode(KindMentionHighlight)
			n.InsertBefore(wrapper)
			wrapper.AppendChild(n)
		}
	}
	return doc
}

func highlightText(t *Node, m *mentionMatcher) {
	spans := m.find(t.Literal, adjacentRune(t.PrevSibling(), true), adjacentRune(t.NextSibling(), false))
	if len(spans) == 0 {
		return
	}
	literal := t.Literal
	anchor := t
	pos := 0
	place := func(n *Node) {
		anchor.InsertAfter(n)
		anchor = n
	}
	for _, sp := range spans {
		if sp.start > pos {
			place(NewText(literal[pos:sp.start]))
		}
		wrapper := NewNode(KindMentionHighlight)
		wrapper.AppendChild(NewText(literal[sp.start:sp.end]))
		place(wrapper)
		pos = sp.end
	}
	if pos < len(literal) {
		place(NewText(literal[pos:]))
	}
	t.Unlink()
}

// adjacentRune returns the rune of a neighbouring text-bearing sibling
// that touches the current node, or utf8.RuneError when the neighbour is
// absent or is not text. Looking across siblings keeps a second pass from
// finding matches the first one rejected.
func adjacentRune(n *Node, last bool) rune {
	if n == nil {
		return utf8.RuneError
	}
	var s string
	switch n.Kind {
	case KindText:
		s = n.Literal
	case KindMentionHighlight:
		s = PlainText(n)
	default:
		return utf8.RuneError
	}
	if s == "" {
		return utf8.RuneError
	}
	if last {
		r, _ := utf8.DecodeLastRuneInString(s)
		return r
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// AppendEditedIndicator adds the edited marker at the end of the
// document: inside the last block when it is a heading or paragraph,
// otherwise in a new paragraph of its own.
func AppendEditedIndicator(doc *Node) *Node {
	indicator := NewNode(KindEditedIndicator)
	if last := doc.LastChild(); last != nil && (last.Kind == KindParagraph || last.Kind == KindHeading) {
		last.AppendChild(indicator)
		return doc
	}
	doc.AppendChild(NewNode(KindParagraph).AppendChild(indicator))
	return doc
}
