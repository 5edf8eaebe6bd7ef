package chatmark

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MentionKey is a string that should be highlighted when it appears in a
// message, such as the reader's @username or first name.
type MentionKey struct {
	Key string
	// CaseSensitive forces an exact match. Without it an all-lowercase key
	// matches regardless of case and any other key still matches exactly,
	// so "Will" does not light up every sentence starting with "will".
	CaseSensitive bool
}

func (k MentionKey) foldCase() bool {
	return !k.CaseSensitive && k.Key == strings.ToLower(k.Key)
}

type mentionPattern struct {
	key   string
	runes int
	fold  bool
}

// mentionMatcher finds mention keys in text, longest key first.
type mentionMatcher struct {
	patterns []mentionPattern
}

func newMentionMatcher(keys []MentionKey) *mentionMatcher {
	m := &mentionMatcher{}
	for _, k := range keys {
		if k.Key == "" {
			continue
		}
		m.patterns = append(m.patterns, mentionPattern{
			key:   k.Key,
			runes: utf8.RuneCountInString(k.Key),
			fold:  k.foldCase(),
		})
	}
	sort.SliceStable(m.patterns, func(i, j int) bool {
		return m.patterns[i].runes > m.patterns[j].runes
	})
	return m
}

func (m *mentionMatcher) empty() bool { return len(m.patterns) == 0 }

// span is a matched byte range [start, end).
type span struct {
	start, end int
}

// find returns the non-overlapping matches in s. before and after are the
// runes adjacent to s in the surrounding text, or utf8.RuneError when s is
// at a boundary.
func (m *mentionMatcher) find(s string, before, after rune) []span {
	var spans []span
	prev := before
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isWordRune(prev) {
			if end, ok := m.matchAt(s, i, after); ok {
				spans = append(spans, span{start: i, end: end})
				last, _ := utf8.DecodeLastRuneInString(s[i:end])
				prev = last
				i = end
				continue
			}
		}
		prev = r
		i += size
	}
	return spans
}

func (m *mentionMatcher) matchAt(s string, i int, after rune) (int, bool) {
	for _, p := range m.patterns {
		end := advanceRunes(s, i, p.runes)
		if end < 0 {
			continue
		}
		candidate := s[i:end]
		if p.fold {
			if !strings.EqualFold(candidate, p.key) {
				continue
			}
		} else if candidate != p.key {
			continue
		}
		next := after
		if end < len(s) {
			next, _ = utf8.DecodeRuneInString(s[end:])
		}
		last, _ := utf8.DecodeLastRuneInString(p.key)
		if isWordRune(last) && isWordRune(next) {
			continue
		}
		return end, true
	}
	return 0, false
}

// matchesName reports whether a key matches an entire token such as
// "@bob" or "@bob.", the form a mention node spells out.
func (m *mentionMatcher) matchesName(token string) bool {
	for _, p := range m.patterns {
		for _, cand := range []string{token, strings.TrimSuffix(token, ".")} {
			if p.fold && strings.EqualFold(cand, p.key) || cand == p.key {
				return true
			}
		}
	}
	return false
}

// advanceRunes returns the byte offset n runes after i, or -1 if s is too short.
func advanceRunes(s string, i, n int) int {
	for ; n > 0; n-- {
		if i >= len(s) {
			return -1
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

func isWordRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
