package chatmark

import "strings"

// DefaultMinimumHashtagLength is used when Options.MinimumHashtagLength is zero.
const DefaultMinimumHashtagLength = 3

// ImageMetadata describes an image the host already knows about.
type ImageMetadata struct {
	Width      int
	Height     int
	Format     string
	FrameCount int
}

// Options is everything the host supplies for one document.
type Options struct {
	BaseStyle   Style
	TextStyles  StyleTable
	BlockStyles BlockStyles

	EnableMath          bool
	EnableInlineMath    bool
	DisableMentions     bool
	DisableChannelLinks bool
	DisableHashtags     bool
	DisableGallery      bool

	// MentionKeys are highlighted wherever they occur in text.
	MentionKeys []MentionKey

	// Edited appends an edited indicator to the document.
	Edited bool

	// LayoutWidth bounds the display size of images. Zero means unbounded.
	LayoutWidth int

	// Images is keyed by image source. A nil map disables image rendering.
	Images map[string]ImageMetadata

	// AutolinkedSchemes lists URL schemes links may use. Destinations
	// without a scheme are always allowed. Nil allows every scheme.
	AutolinkedSchemes []string

	MinimumHashtagLength int
}

// ThemeOptions returns Options styled from theme with every feature at
// its default.
func ThemeOptions(theme Theme) Options {
	return Options{
		BaseStyle:   theme.BaseStyle(),
		TextStyles:  theme.TextStyles(),
		BlockStyles: theme.BlockStyles(),
	}
}

// ParseConfig is the configuration handed to a Parser.
type ParseConfig struct {
	// URLFilter reports whether a link destination may become a link.
	URLFilter            func(url string) bool
	MinimumHashtagLength int
}

// AllowsURL applies the filter; a nil filter allows everything.
func (c ParseConfig) AllowsURL(url string) bool {
	if c.URLFilter == nil {
		return true
	}
	return c.URLFilter(url)
}

// ParseConfig derives the parser configuration from the options.
func (o Options) ParseConfig() ParseConfig {
	minLen := o.MinimumHashtagLength
	if minLen <= 0 {
		minLen = DefaultMinimumHashtagLength
	}
	cfg := ParseConfig{MinimumHashtagLength: minLen}
	if o.AutolinkedSchemes != nil {
		schemes := o.AutolinkedSchemes
		cfg.URLFilter = func(url string) bool {
			scheme := URLScheme(url)
			if scheme == "" {
				return true
			}
			for _, s := range schemes {
				if strings.EqualFold(s, scheme) {
					return true
				}
			}
			return false
		}
	}
	return cfg
}

// URLScheme returns the lowercased scheme of url, or "" when it has none.
func URLScheme(url string) string {
	i := strings.IndexByte(url, ':')
	if i <= 0 {
		return ""
	}
	for j := 0; j < i; j++ {
		c := url[j]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case j > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return ""
		}
	}
	return strings.ToLower(url[:i])
}
