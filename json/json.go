// Package json serializes rendered chatmark documents and transformed
// trees, and loads image metadata supplied by the host.
package json

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/chatmark"
)

// envelope is the v1 wire format for a rendered document.
type envelope struct {
	Version  int        `json:"version"`
	Document elementDTO `json:"document"`
}

// treeEnvelope is the v1 wire format for a transformed tree.
type treeEnvelope struct {
	Version int     `json:"version"`
	Tree    nodeDTO `json:"tree"`
}

// MarshalDocument serializes a rendered document to JSON in v1 envelope
// format.
func MarshalDocument(doc *chatmark.Document) ([]byte, error) {
	if doc == nil {
		return nil, chatmark.ErrNilDocument
	}
	dto, err := marshalElement(doc)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(envelope{Version: 1, Document: dto}, "", "  ")
}

// MarshalTree serializes a node tree to JSON in v1 envelope format.
func MarshalTree(n *chatmark.Node) ([]byte, error) {
	if n == nil {
		return nil, chatmark.ErrNilDocument
	}
	return json.MarshalIndent(treeEnvelope{Version: 1, Tree: marshalNode(n)}, "", "  ")
}

// imageDTO is the JSON representation of one image's metadata.
type imageDTO struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Format     string `json:"format,omitempty"`
	FrameCount int    `json:"frame_count,omitempty"`
}

// UnmarshalImages decodes an object mapping image sources to metadata.
func UnmarshalImages(data []byte) (map[string]chatmark.ImageMetadata, error) {
	var raw map[string]imageDTO
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal images: %w", err)
	}
	images := make(map[string]chatmark.ImageMetadata, len(raw))
	for src, dto := range raw {
		if dto.Width < 0 || dto.Height < 0 {
			return nil, fmt.Errorf("image %q: negative size %dx%d", src, dto.Width, dto.Height)
		}
		images[src] = chatmark.ImageMetadata{
			Width:      dto.Width,
			Height:     dto.Height,
			Format:     dto.Format,
			FrameCount: dto.FrameCount,
		}
	}
	return images, nil
}

// LoadImages reads image metadata from a JSON file.
func LoadImages(path string) (map[string]chatmark.ImageMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalImages(data)
}
