package chatmark

// Kind identifies a markdown construct. The set is closed: every Kind
// between KindDocument and kindCount has a render entry.
type Kind uint8

const (
	KindDocument Kind = iota
	KindText
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindCodeSpan
	KindLink
	KindImage
	KindMention
	KindChannelMention
	KindHashtag
	KindEmoji
	KindInlineMath
	KindParagraph
	KindHeading
	KindCodeBlock
	KindBlockQuote
	KindList
	KindListItem
	KindHardBreak
	KindSoftBreak
	KindThematicBreak
	KindHTMLBlock
	KindHTMLInline
	KindTable
	KindTableRow
	KindTableCell
	KindMentionHighlight
	KindEditedIndicator

	kindCount
)

var kindNames = [kindCount]string{
	KindDocument:         "document",
	KindText:             "text",
	KindEmphasis:         "emphasis",
	KindStrong:           "strong",
	KindStrikethrough:    "strikethrough",
	KindCodeSpan:         "code_span",
	KindLink:             "link",
	KindImage:            "image",
	KindMention:          "mention",
	KindChannelMention:   "channel_mention",
	KindHashtag:          "hashtag",
	KindEmoji:            "emoji",
	KindInlineMath:       "inline_math",
	KindParagraph:        "paragraph",
	KindHeading:          "heading",
	KindCodeBlock:        "code_block",
	KindBlockQuote:       "block_quote",
	KindList:             "list",
	KindListItem:         "list_item",
	KindHardBreak:        "hard_break",
	KindSoftBreak:        "soft_break",
	KindThematicBreak:    "thematic_break",
	KindHTMLBlock:        "html_block",
	KindHTMLInline:       "html_inline",
	KindTable:            "table",
	KindTableRow:         "table_row",
	KindTableCell:        "table_cell",
	KindMentionHighlight: "mention_highlight",
	KindEditedIndicator:  "edited_indicator",
}

// String returns the kind's name. Style tables are keyed by this name.
func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := KindDocument; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// HasLiteral reports whether nodes of this kind carry a Literal payload.
func (k Kind) HasLiteral() bool {
	switch k {
	case KindText, KindCodeSpan, KindCodeBlock, KindHTMLBlock, KindHTMLInline, KindInlineMath, KindEmoji:
		return true
	default:
		return false
	}
}

// IsBlock reports whether the kind is a block-level construct.
func (k Kind) IsBlock() bool {
	switch k {
	case KindDocument, KindParagraph, KindHeading, KindCodeBlock, KindBlockQuote,
		KindList, KindListItem, KindThematicBreak, KindHTMLBlock,
		KindTable, KindTableRow, KindTableCell:
		return true
	default:
		return false
	}
}
