package chatmark_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/chatmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dump renders a tree compactly for structural comparisons.
func dump(n *chatmark.Node) string {
	var b strings.Builder
	var walk func(n *chatmark.Node)
	walk = func(n *chatmark.Node) {
		b.WriteString(n.Kind.String())
		if n.Kind.HasLiteral() {
			b.WriteString(":" + n.Literal)
		}
		if c := n.FirstChild(); c != nil {
			b.WriteString("(")
			for ; c != nil; c = c.NextSibling() {
				walk(c)
				if c.NextSibling() != nil {
					b.WriteString(",")
				}
			}
			b.WriteString(")")
		}
	}
	walk(n)
	return b.String()
}

func TestCoalesceText(t *testing.T) {
	t.Parallel()

	build := func() *chatmark.Node {
		return doc(para(
			text("a"), text("b"),
			node(chatmark.KindEmphasis, text("c"), text("d")),
			text("e"), text("f"),
		))
	}

	t.Run("merges adjacent text only", func(t *testing.T) {
		t.Parallel()
		got := chatmark.CoalesceText(build())
		assert.Equal(t, "document(paragraph(text:ab,emphasis(text:cd),text:ef))", dump(got))
	})

	t.Run("does not merge across other nodes", func(t *testing.T) {
		t.Parallel()
		got := chatmark.CoalesceText(doc(para(text("a"), node(chatmark.KindEmphasis, text("b")), text("c"))))
		require.Equal(t, 3, got.FirstChild().ChildCount())
	})

	t.Run("applying twice equals applying once", func(t *testing.T) {
		t.Parallel()
		once := dump(chatmark.CoalesceText(build()))
		twice := dump(chatmark.CoalesceText(chatmark.CoalesceText(build())))
		assert.Equal(t, once, twice)
	})
}

func TestAnnotateListItems(t *testing.T) {
	t.Parallel()

	t.Run("flat list indexes from zero", func(t *testing.T) {
		t.Parallel()
		l := list(true, item(), item(), item(), item())
		chatmark.AnnotateListItems(doc(l))
		for i, it := range l.Children() {
			assert.Equal(t, i, it.Attrs.Index)
			assert.False(t, it.Attrs.Continue)
		}
	})

	t.Run("interrupted list of same ordering continues", func(t *testing.T) {
		t.Parallel()
		second := list(true, item(), item())
		chatmark.AnnotateListItems(doc(list(true, item(), item()), para(text("break")), second))
		assert.True(t, second.FirstChild().Attrs.Continue)
		assert.Equal(t, 0, second.FirstChild().Attrs.Index)
		assert.Equal(t, 1, second.LastChild().Attrs.Index)
	})

	t.Run("different ordering does not continue", func(t *testing.T) {
		t.Parallel()
		second := list(false, item())
		chatmark.AnnotateListItems(doc(list(true, item()), para(text("x")), second))
		assert.False(t, second.FirstChild().Attrs.Continue)
	})

	t.Run("directly adjacent lists do not continue", func(t *testing.T) {
		t.Parallel()
		second := list(true, item())
		chatmark.AnnotateListItems(doc(list(true, item()), second))
		assert.False(t, second.FirstChild().Attrs.Continue)
	})

	t.Run("nested lists index independently", func(t *testing.T) {
		t.Parallel()
		inner := list(false, item(), item(), item())
		outer := list(true, item(para(text("a")), inner), item())
		chatmark.AnnotateListItems(doc(outer))
		assert.Equal(t, []int{0, 1}, indices(outer))
		assert.Equal(t, []int{0, 1, 2}, indices(inner))
	})

	t.Run("re-application is stable", func(t *testing.T) {
		t.Parallel()
		second := list(true, item(), item())
		d := doc(list(true, item()), para(text("x")), second)
		chatmark.AnnotateListItems(d)
		chatmark.AnnotateListItems(d)
		assert.Equal(t, []int{0, 1}, indices(second))
		assert.True(t, second.FirstChild().Attrs.Continue)
	})
}

func indices(l *chatmark.Node) []int {
	var out []int
	for _, it := range l.Children() {
		out = append(out, it.Attrs.Index)
	}
	return out
}

// noImageInParagraph checks the hoisting postcondition.
func noImageInParagraph(t *testing.T, d *chatmark.Node) {
	t.Helper()
	chatmark.Walk(d, func(n *chatmark.Node, entering bool) chatmark.WalkStatus {
		if entering && n.Kind == chatmark.KindImage && n.HasAncestor(chatmark.KindParagraph) {
			assert.True(t, n.HasAncestor(chatmark.KindTable), "image left inside paragraph")
		}
		return chatmark.WalkContinue
	})
}

func TestHoistImages(t *testing.T) {
	t.Parallel()

	t.Run("splits paragraph around image", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HoistImages(doc(para(text("a "), image("u", text("x")), text(" b"))))
		assert.Equal(t, "document(paragraph(text:a ),image(text:x),paragraph(text: b))", dump(d))
		assert.Equal(t, "u", d.Children()[1].Attrs.Destination)
		noImageInParagraph(t, d)
	})

	t.Run("image alone replaces its paragraph", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HoistImages(doc(para(image("u"))))
		assert.Equal(t, "document(image)", dump(d))
	})

	t.Run("image at start keeps following text", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HoistImages(doc(para(image("u"), text("after"))))
		assert.Equal(t, "document(image,paragraph(text:after))", dump(d))
	})

	t.Run("several images keep text order", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HoistImages(doc(para(text("a"), image("1"), text("b"), image("2"), text("c"))))
		assert.Equal(t,
			"document(paragraph(text:a),image,paragraph(text:b),image,paragraph(text:c))",
			dump(d))
		assert.Equal(t, "1", d.Children()[1].Attrs.Destination)
		assert.Equal(t, "2", d.Children()[3].Attrs.Destination)
	})

	t.Run("inline wrappers are split", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HoistImages(doc(para(
			text("a "),
			node(chatmark.KindEmphasis, text("b "), image("u"), text(" c")),
			text(" d"),
		)))
		assert.Equal(t,
			"document(paragraph(text:a ,emphasis(text:b )),image,paragraph(emphasis(text: c),text: d))",
			dump(d))
	})

	t.Run("image in link records destination", func(t *testing.T) {
		t.Parallel()
		link := node(chatmark.KindLink, image("img.png"))
		link.Attrs.Destination = "https://example.com"
		d := chatmark.HoistImages(doc(para(text("see "), link)))
		assert.Equal(t, "document(paragraph(text:see ),image)", dump(d))
		assert.Equal(t, "https://example.com", d.LastChild().Attrs.LinkDestination)
	})

	t.Run("breaks at the split edge are trimmed", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HoistImages(doc(para(
			text("a"), node(chatmark.KindSoftBreak), image("u"), node(chatmark.KindSoftBreak), text("b"),
		)))
		assert.Equal(t, "document(paragraph(text:a),image,paragraph(text:b))", dump(d))
	})

	t.Run("hoists within list items", func(t *testing.T) {
		t.Parallel()
		it := item(para(text("x"), image("u")))
		d := chatmark.HoistImages(doc(list(false, it)))
		assert.Equal(t, []chatmark.Kind{chatmark.KindParagraph, chatmark.KindImage}, kinds(it.Children()))
		noImageInParagraph(t, d)
	})

	t.Run("images in tables stay put", func(t *testing.T) {
		t.Parallel()
		table := node(chatmark.KindTable, node(chatmark.KindTableRow, node(chatmark.KindTableCell, para(image("u")))))
		d := chatmark.HoistImages(doc(table))
		assert.Equal(t, "document(table(table_row(table_cell(paragraph(image)))))", dump(d))
		noImageInParagraph(t, d)
	})

	t.Run("re-application is stable", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HoistImages(doc(para(text("a "), image("u"), text(" b"))))
		once := dump(d)
		assert.Equal(t, once, dump(chatmark.HoistImages(d)))
	})
}

func TestHighlightMentions(t *testing.T) {
	t.Parallel()

	keys := func(ks ...string) []chatmark.MentionKey {
		out := make([]chatmark.MentionKey, len(ks))
		for i, k := range ks {
			out[i] = chatmark.MentionKey{Key: k}
		}
		return out
	}

	t.Run("longest key wins", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HighlightMentions(doc(para(text("hi @bob.smith!"))), keys("@bob", "@bob.smith"))
		assert.Equal(t,
			"document(paragraph(text:hi ,mention_highlight(text:@bob.smith),text:!))",
			dump(d))
	})

	t.Run("leaf text is preserved", func(t *testing.T) {
		t.Parallel()
		src := "@bob and Bob and bobby and @BOB, bob"
		d := doc(para(text(src)), para(node(chatmark.KindStrong, text("bob!"))))
		before := chatmark.PlainText(d)
		chatmark.HighlightMentions(d, keys("bob", "@bob"))
		assert.Equal(t, before, chatmark.PlainText(d))
	})

	t.Run("respects word boundaries", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HighlightMentions(doc(para(text("bobby jimbob bob's"))), keys("bob"))
		assert.Equal(t,
			"document(paragraph(text:bobby jimbob ,mention_highlight(text:bob),text:'s))",
			dump(d))
	})

	t.Run("lowercase keys fold case", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HighlightMentions(doc(para(text("Hey BOB"))), keys("bob"))
		assert.Equal(t, "document(paragraph(text:Hey ,mention_highlight(text:BOB)))", dump(d))
	})

	t.Run("mixed case keys match exactly", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HighlightMentions(doc(para(text("will Will"))), keys("Will"))
		assert.Equal(t, "document(paragraph(text:will ,mention_highlight(text:Will)))", dump(d))
	})

	t.Run("case sensitive keys match exactly", func(t *testing.T) {
		t.Parallel()
		ks := []chatmark.MentionKey{{Key: "bob", CaseSensitive: true}}
		d := chatmark.HighlightMentions(doc(para(text("BOB bob"))), ks)
		assert.Equal(t, "document(paragraph(text:BOB ,mention_highlight(text:bob)))", dump(d))
	})

	t.Run("multiple matches in one text", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HighlightMentions(doc(para(text("@a x @a"))), keys("@a"))
		assert.Equal(t,
			"document(paragraph(mention_highlight(text:@a),text: x ,mention_highlight(text:@a)))",
			dump(d))
	})

	t.Run("mention nodes are wrapped whole", func(t *testing.T) {
		t.Parallel()
		m := node(chatmark.KindMention)
		m.Attrs.Name = "bob"
		other := node(chatmark.KindMention)
		other.Attrs.Name = "alice"
		d := chatmark.HighlightMentions(doc(para(m, text(" "), other)), keys("@bob"))
		assert.Equal(t, "document(paragraph(mention_highlight(mention),text: ,mention))", dump(d))
	})

	t.Run("re-application is stable", func(t *testing.T) {
		t.Parallel()
		d := doc(para(text("@bob@bob and @bob")))
		chatmark.HighlightMentions(d, keys("@bob"))
		once := dump(d)
		chatmark.HighlightMentions(d, keys("@bob"))
		assert.Equal(t, once, dump(d))
	})

	t.Run("no keys leaves tree alone", func(t *testing.T) {
		t.Parallel()
		d := chatmark.HighlightMentions(doc(para(text("bob"))), nil)
		assert.Equal(t, "document(paragraph(text:bob))", dump(d))
	})
}

func TestAppendEditedIndicator(t *testing.T) {
	t.Parallel()

	t.Run("appended inside trailing paragraph", func(t *testing.T) {
		t.Parallel()
		d := chatmark.AppendEditedIndicator(doc(para(text("a"))))
		assert.Equal(t, "document(paragraph(text:a,edited_indicator))", dump(d))
	})

	t.Run("appended inside trailing heading", func(t *testing.T) {
		t.Parallel()
		d := chatmark.AppendEditedIndicator(doc(node(chatmark.KindHeading, text("h"))))
		assert.Equal(t, "document(heading(text:h,edited_indicator))", dump(d))
	})

	t.Run("new paragraph after other blocks", func(t *testing.T) {
		t.Parallel()
		d := chatmark.AppendEditedIndicator(doc(para(text("a")), node(chatmark.KindThematicBreak)))
		assert.Equal(t, "document(paragraph(text:a),thematic_break,paragraph(edited_indicator))", dump(d))
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		d := chatmark.AppendEditedIndicator(doc())
		assert.Equal(t, "document(paragraph(edited_indicator))", dump(d))
	})
}

func TestTransform(t *testing.T) {
	t.Parallel()

	d := doc(
		para(text("look "), text("@bob "), image("u"), text(" done")),
		list(true, item(para(text("one")))),
	)
	chatmark.Transform(d, []chatmark.MentionKey{{Key: "@bob"}})
	assert.Equal(t,
		"document(paragraph(text:look ,mention_highlight(text:@bob),text: ),image,paragraph(text: done),list(list_item(paragraph(text:one))))",
		dump(d))
}
