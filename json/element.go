package json

import (
	"fmt"

	"github.com/fwojciec/chatmark"
)

// elementDTO is the JSON representation of an Element with a type
// discriminator.
type elementDTO struct {
	Type            string       `json:"type"`
	Content         *string      `json:"content,omitempty"`
	Style           *styleDTO    `json:"style,omitempty"`
	TextStyle       *styleDTO    `json:"text_style,omitempty"`
	Level           *int         `json:"level,omitempty"`
	Language        *string      `json:"language,omitempty"`
	Ordered         *bool        `json:"ordered,omitempty"`
	Start           *int         `json:"start,omitempty"`
	Tight           *bool        `json:"tight,omitempty"`
	Index           *int         `json:"index,omitempty"`
	Continue        *bool        `json:"continue,omitempty"`
	Destination     *string      `json:"destination,omitempty"`
	Title           *string      `json:"title,omitempty"`
	Source          *string      `json:"source,omitempty"`
	LinkDestination *string      `json:"link_destination,omitempty"`
	Size            *sizeDTO     `json:"size,omitempty"`
	Display         *sizeDTO     `json:"display,omitempty"`
	Interactive     *bool        `json:"interactive,omitempty"`
	Name            *string      `json:"name,omitempty"`
	Highlighted     *bool        `json:"highlighted,omitempty"`
	Columns         *int         `json:"columns,omitempty"`
	Header          *bool        `json:"header,omitempty"`
	Align           *string      `json:"align,omitempty"`
	Hard            *bool        `json:"hard,omitempty"`
	Adjacent        *bool        `json:"adjacent,omitempty"`
	Spacer          *string      `json:"spacer,omitempty"`
	Caption         []elementDTO `json:"caption,omitempty"`
	Children        []elementDTO `json:"children,omitempty"`
}

type sizeDTO struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// styleDTO omits unset fields; a flag is true or false only when the style
// sets it explicitly.
type styleDTO struct {
	Foreground    string  `json:"foreground,omitempty"`
	Background    string  `json:"background,omitempty"`
	Bold          *bool   `json:"bold,omitempty"`
	Italic        *bool   `json:"italic,omitempty"`
	Underline     *bool   `json:"underline,omitempty"`
	Strikethrough *bool   `json:"strikethrough,omitempty"`
	Faint         *bool   `json:"faint,omitempty"`
	Code          *bool   `json:"code,omitempty"`
	Scale         float64 `json:"scale,omitempty"`
}

func ptr[T any](v T) *T { return &v }

func marshalStyle(s chatmark.Style) *styleDTO {
	if s.IsZero() {
		return nil
	}
	return &styleDTO{
		Foreground:    string(s.Foreground),
		Background:    string(s.Background),
		Bold:          marshalFlag(s.Bold),
		Italic:        marshalFlag(s.Italic),
		Underline:     marshalFlag(s.Underline),
		Strikethrough: marshalFlag(s.Strikethrough),
		Faint:         marshalFlag(s.Faint),
		Code:          marshalFlag(s.Code),
		Scale:         s.Scale,
	}
}

func marshalFlag(f chatmark.Flag) *bool {
	switch f {
	case chatmark.FlagOn:
		return ptr(true)
	case chatmark.FlagOff:
		return ptr(false)
	default:
		return nil
	}
}

func marshalSize(s *chatmark.Size) *sizeDTO {
	if s == nil {
		return nil
	}
	return &sizeDTO{Width: s.Width, Height: s.Height}
}

func marshalElements(elems []chatmark.Element) ([]elementDTO, error) {
	if len(elems) == 0 {
		return nil, nil
	}
	result := make([]elementDTO, len(elems))
	for i, e := range elems {
		dto, err := marshalElement(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		result[i] = dto
	}
	return result, nil
}

func marshalElement(e chatmark.Element) (elementDTO, error) {
	children, err := marshalElements(chatmark.Children(e))
	if err != nil {
		return elementDTO{}, err
	}
	switch v := e.(type) {
	case *chatmark.Document:
		return elementDTO{Type: "document", Children: children}, nil
	case *chatmark.Fragment:
		return elementDTO{Type: "fragment", Children: children}, nil
	case *chatmark.Text:
		return elementDTO{Type: "text", Content: &v.Content, Style: marshalStyle(v.Style)}, nil
	case *chatmark.Paragraph:
		return elementDTO{Type: "paragraph", Adjacent: &v.Adjacent, Style: marshalStyle(v.Style), Children: children}, nil
	case *chatmark.Heading:
		return elementDTO{
			Type:      "heading",
			Level:     &v.Level,
			Style:     marshalStyle(v.BlockStyle),
			TextStyle: marshalStyle(v.TextStyle),
			Children:  children,
		}, nil
	case *chatmark.CodeBlock:
		return elementDTO{Type: "code_block", Language: &v.Language, Content: &v.Content, Style: marshalStyle(v.Style)}, nil
	case *chatmark.MathBlock:
		return elementDTO{Type: "math_block", Content: &v.Content}, nil
	case *chatmark.MathInline:
		return elementDTO{Type: "math_inline", Content: &v.Content, Style: marshalStyle(v.Style)}, nil
	case *chatmark.BlockQuote:
		return elementDTO{Type: "block_quote", Style: marshalStyle(v.IconStyle), Children: children}, nil
	case *chatmark.List:
		return elementDTO{Type: "list", Ordered: &v.Ordered, Start: &v.Start, Tight: &v.Tight, Children: children}, nil
	case *chatmark.ListItem:
		return elementDTO{
			Type:     "list_item",
			Level:    &v.Level,
			Index:    &v.Index,
			Continue: &v.Continue,
			Style:    marshalStyle(v.BulletStyle),
			Children: children,
		}, nil
	case *chatmark.Link:
		return elementDTO{Type: "link", Destination: &v.Destination, Title: &v.Title, Children: children}, nil
	case *chatmark.Image:
		caption, err := marshalElements(v.Caption)
		if err != nil {
			return elementDTO{}, fmt.Errorf("caption: %w", err)
		}
		dto := elementDTO{
			Type:        "image",
			Source:      &v.Source,
			Size:        marshalSize(v.Size),
			Display:     marshalSize(v.Display),
			Interactive: &v.Interactive,
			Style:       marshalStyle(v.ErrorStyle),
			Caption:     caption,
		}
		if v.LinkDestination != "" {
			dto.LinkDestination = &v.LinkDestination
		}
		return dto, nil
	case *chatmark.TableImage:
		return elementDTO{Type: "table_image", Source: &v.Source, Interactive: &v.Interactive}, nil
	case *chatmark.Mention:
		return elementDTO{Type: "mention", Name: &v.Name, Highlighted: &v.Highlighted, Style: marshalStyle(v.Style.Merge(v.MentionStyle))}, nil
	case *chatmark.ChannelMention:
		return elementDTO{Type: "channel_mention", Name: &v.Name, Style: marshalStyle(v.Style.Merge(v.LinkStyle))}, nil
	case *chatmark.Hashtag:
		return elementDTO{Type: "hashtag", Name: &v.Tag, Style: marshalStyle(v.LinkStyle)}, nil
	case *chatmark.Emoji:
		return elementDTO{Type: "emoji", Name: &v.Name, Content: &v.Literal, Style: marshalStyle(v.Style)}, nil
	case *chatmark.Table:
		return elementDTO{Type: "table", Columns: &v.Columns, Children: children}, nil
	case *chatmark.TableRow:
		return elementDTO{Type: "table_row", Header: &v.Header, Children: children}, nil
	case *chatmark.TableCell:
		dto := elementDTO{Type: "table_cell", Header: &v.Header, Children: children}
		if name := alignName(v.Align); name != "" {
			dto.Align = &name
		}
		return dto, nil
	case *chatmark.Break:
		return elementDTO{Type: "break", Hard: &v.Hard}, nil
	case *chatmark.ThematicBreak:
		return elementDTO{Type: "thematic_break", Style: marshalStyle(v.Style)}, nil
	case *chatmark.Block:
		return elementDTO{Type: "block", Children: children}, nil
	case *chatmark.EditedIndicator:
		return elementDTO{Type: "edited_indicator", Spacer: &v.Spacer, Style: marshalStyle(v.Style)}, nil
	default:
		return elementDTO{}, fmt.Errorf("unknown element type: %T", e)
	}
}
