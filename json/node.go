package json

import "github.com/fwojciec/chatmark"

// nodeDTO is the JSON representation of a tree node. Zero attributes are
// omitted.
type nodeDTO struct {
	Kind            string    `json:"kind"`
	Literal         string    `json:"literal,omitempty"`
	Destination     string    `json:"destination,omitempty"`
	Title           string    `json:"title,omitempty"`
	Level           int       `json:"level,omitempty"`
	Language        string    `json:"language,omitempty"`
	Ordered         bool      `json:"ordered,omitempty"`
	Start           int       `json:"start,omitempty"`
	Tight           bool      `json:"tight,omitempty"`
	Index           *int      `json:"index,omitempty"`
	Continue        bool      `json:"continue,omitempty"`
	Name            string    `json:"name,omitempty"`
	LinkDestination string    `json:"link_destination,omitempty"`
	Columns         int       `json:"columns,omitempty"`
	Header          bool      `json:"header,omitempty"`
	Align           string    `json:"align,omitempty"`
	Children        []nodeDTO `json:"children,omitempty"`
}

func marshalNode(n *chatmark.Node) nodeDTO {
	a := n.Attrs
	dto := nodeDTO{
		Kind:            n.Kind.String(),
		Literal:         n.Literal,
		Destination:     a.Destination,
		Title:           a.Title,
		Level:           a.Level,
		Language:        a.Language,
		Ordered:         a.Ordered,
		Start:           a.Start,
		Tight:           a.Tight,
		Continue:        a.Continue,
		Name:            a.Name,
		LinkDestination: a.LinkDestination,
		Columns:         a.Columns,
		Header:          a.Header,
		Align:           alignName(a.Align),
	}
	if n.Kind == chatmark.KindListItem {
		index := a.Index
		dto.Index = &index
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		dto.Children = append(dto.Children, marshalNode(c))
	}
	return dto
}

func alignName(a chatmark.Align) string {
	switch a {
	case chatmark.AlignLeft:
		return "left"
	case chatmark.AlignCenter:
		return "center"
	case chatmark.AlignRight:
		return "right"
	default:
		return ""
	}
}
