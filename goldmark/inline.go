package goldmark

import (
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/chatmark"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Node kinds for the chat inline constructs.
var (
	KindMention        = ast.NewNodeKind("Mention")
	KindChannelMention = ast.NewNodeKind("ChannelMention")
	KindHashtag        = ast.NewNodeKind("Hashtag")
	KindInlineMath     = ast.NewNodeKind("InlineMath")
)

// Inline parser priorities. Goldmark runs lower values first; the channel
// parser must see '~' before strikethrough does.
const (
	channelParserPriority = 450
	chatParserPriority    = 600
)

var configKey = parser.NewContextKey()

// Mention is an "@name" reference.
type Mention struct {
	ast.BaseInline
	Name string
}

// Kind implements ast.Node.
func (n *Mention) Kind() ast.NodeKind { return KindMention }

// Dump implements ast.Node.
func (n *Mention) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// ChannelMention is a "~name" reference.
type ChannelMention struct {
	ast.BaseInline
	Name string
}

// Kind implements ast.Node.
func (n *ChannelMention) Kind() ast.NodeKind { return KindChannelMention }

// Dump implements ast.Node.
func (n *ChannelMention) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// Hashtag is a "#tag" reference.
type Hashtag struct {
	ast.BaseInline
	Tag string
}

// Kind implements ast.Node.
func (n *Hashtag) Kind() ast.NodeKind { return KindHashtag }

// Dump implements ast.Node.
func (n *Hashtag) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Tag": n.Tag}, nil)
}

// InlineMath is a "$...$" formula.
type InlineMath struct {
	ast.BaseInline
	Formula string
}

// Kind implements ast.Node.
func (n *InlineMath) Kind() ast.NodeKind { return KindInlineMath }

// Dump implements ast.Node.
func (n *InlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Formula": n.Formula}, nil)
}

// precededByWord reports whether the trigger character directly follows a
// word character, in which case the construct is part of a larger token.
func precededByWord(block text.Reader) bool {
	return isWordRune(block.PrecendingCharacter())
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanName returns the length of the longest prefix of b whose runes all
// satisfy ok.
func scanName(b []byte, ok func(rune) bool) int {
	n := 0
	for n < len(b) {
		r, size := utf8.DecodeRune(b[n:])
		if r == utf8.RuneError || !ok(r) {
			break
		}
		n += size
	}
	return n
}

type mentionParser struct{}

func (p *mentionParser) Trigger() []byte { return []byte{'@'} }

func (p *mentionParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	if precededByWord(block) {
		return nil
	}
	line, _ := block.PeekLine()
	n := scanName(line[1:], func(r rune) bool {
		return isWordRune(r) || r == '.' || r == '-'
	})
	name := line[1 : 1+n]
	for len(name) > 0 && name[len(name)-1] == '.' {
		name = name[:len(name)-1]
	}
	if len(name) == 0 {
		return nil
	}
	block.Advance(1 + len(name))
	return &Mention{Name: string(name)}
}

type channelParser struct{}

func (p *channelParser) Trigger() []byte { return []byte{'~'} }

func (p *channelParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	if precededByWord(block) {
		return nil
	}
	line, _ := block.PeekLine()
	n := scanName(line[1:], func(r rune) bool {
		return r < utf8.RuneSelf && (isWordRune(r) || r == '-')
	})
	if n == 0 {
		return nil
	}
	block.Advance(1 + n)
	return &ChannelMention{Name: string(line[1 : 1+n])}
}

type hashtagParser struct{}

func (p *hashtagParser) Trigger() []byte { return []byte{'#'} }

func (p *hashtagParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	if precededByWord(block) {
		return nil
	}
	line, _ := block.PeekLine()
	first, _ := utf8.DecodeRune(line[1:])
	if !unicode.IsLetter(first) {
		return nil
	}
	n := scanName(line[1:], func(r rune) bool {
		return isWordRune(r) || r == '.' || r == '-'
	})
	tag := line[1 : 1+n]
	for len(tag) > 0 && (tag[len(tag)-1] == '.' || tag[len(tag)-1] == '-') {
		tag = tag[:len(tag)-1]
	}
	if utf8.RuneCount(tag) < configFrom(pc).MinimumHashtagLength {
		return nil
	}
	block.Advance(1 + len(tag))
	return &Hashtag{Tag: string(tag)}
}

type inlineMathParser struct{}

func (p *inlineMathParser) Trigger() []byte { return []byte{'$'} }

func (p *inlineMathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[1] == '$' || util.IsSpace(line[1]) {
		return nil
	}
	for i := 2; i < len(line); i++ {
		if line[i] != '$' {
			continue
		}
		if util.IsSpace(line[i-1]) || line[i-1] == '\\' {
			continue
		}
		if i+1 < len(line) && line[i+1] >= '0' && line[i+1] <= '9' {
			return nil
		}
		block.Advance(i + 1)
		return &InlineMath{Formula: string(line[1:i])}
	}
	return nil
}

func configFrom(pc parser.Context) chatmark.ParseConfig {
	if cfg, ok := pc.Get(configKey).(chatmark.ParseConfig); ok {
		return cfg
	}
	return chatmark.ParseConfig{MinimumHashtagLength: chatmark.DefaultMinimumHashtagLength}
}

type chatExtension struct{}

// Chat is a goldmark extension that parses mentions, channel links,
// hashtags and inline math. Emoji shortcodes come from goldmark-emoji.
var Chat goldmark.Extender = &chatExtension{}

func (e *chatExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(&channelParser{}, channelParserPriority),
			util.Prioritized(&mentionParser{}, chatParserPriority),
			util.Prioritized(&hashtagParser{}, chatParserPriority),
			util.Prioritized(&inlineMathParser{}, chatParserPriority),
		),
	)
}
