package json_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/chatmark"
	chatjson "github.com/fwojciec/chatmark/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode unmarshals data into a generic map for field assertions.
func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func child(t *testing.T, m map[string]any, path ...int) map[string]any {
	t.Helper()
	for _, i := range path {
		children, ok := m["children"].([]any)
		require.True(t, ok, "no children in %v", m)
		require.Greater(t, len(children), i)
		m = children[i].(map[string]any)
	}
	return m
}

func TestMarshalDocument(t *testing.T) {
	t.Parallel()

	t.Run("envelope and discriminators", func(t *testing.T) {
		t.Parallel()
		doc := &chatmark.Document{Children: []chatmark.Element{
			&chatmark.Paragraph{Children: []chatmark.Element{
				&chatmark.Text{Content: "hi ", Style: chatmark.Style{Foreground: "7"}},
				&chatmark.Mention{Name: "bob", Highlighted: true, MentionStyle: chatmark.Style{Bold: chatmark.FlagOn}},
				&chatmark.EditedIndicator{Spacer: " "},
			}},
			&chatmark.List{Ordered: true, Start: 1, Tight: true, Children: []chatmark.Element{
				&chatmark.ListItem{Level: 1, Index: 0, Continue: true},
			}},
		}}

		data, err := chatjson.MarshalDocument(doc)
		require.NoError(t, err)
		out := decode(t, data)
		assert.Equal(t, float64(1), out["version"])

		root := out["document"].(map[string]any)
		assert.Equal(t, "document", root["type"])

		text := child(t, root, 0, 0)
		assert.Equal(t, "text", text["type"])
		assert.Equal(t, "hi ", text["content"])
		assert.Equal(t, map[string]any{"foreground": "7"}, text["style"])

		mention := child(t, root, 0, 1)
		assert.Equal(t, "mention", mention["type"])
		assert.Equal(t, "bob", mention["name"])
		assert.Equal(t, true, mention["highlighted"])
		assert.Equal(t, map[string]any{"bold": true}, mention["style"])

		edited := child(t, root, 0, 2)
		assert.Equal(t, "edited_indicator", edited["type"])
		assert.Equal(t, " ", edited["spacer"])
		assert.NotContains(t, edited, "style")

		item := child(t, root, 1, 0)
		assert.Equal(t, "list_item", item["type"])
		assert.Equal(t, float64(0), item["index"])
		assert.Equal(t, true, item["continue"])
	})

	t.Run("image metadata", func(t *testing.T) {
		t.Parallel()
		doc := &chatmark.Document{Children: []chatmark.Element{
			&chatmark.Image{
				Source:          "a.png",
				LinkDestination: "https://x.com",
				Size:            &chatmark.Size{Width: 800, Height: 400},
				Display:         &chatmark.Size{Width: 200, Height: 100},
				Caption:         []chatmark.Element{&chatmark.Text{Content: "alt"}},
				Interactive:     true,
			},
		}}
		data, err := chatjson.MarshalDocument(doc)
		require.NoError(t, err)

		img := child(t, decode(t, data)["document"].(map[string]any), 0)
		assert.Equal(t, "image", img["type"])
		assert.Equal(t, "https://x.com", img["link_destination"])
		assert.Equal(t, map[string]any{"width": float64(200), "height": float64(100)}, img["display"])
		caption := img["caption"].([]any)
		require.Len(t, caption, 1)
		assert.Equal(t, "alt", caption[0].(map[string]any)["content"])
	})

	t.Run("flags set off are kept", func(t *testing.T) {
		t.Parallel()
		doc := &chatmark.Document{Children: []chatmark.Element{
			&chatmark.Text{Content: "x", Style: chatmark.Style{Bold: chatmark.FlagOff}},
		}}
		data, err := chatjson.MarshalDocument(doc)
		require.NoError(t, err)
		text := child(t, decode(t, data)["document"].(map[string]any), 0)
		assert.Equal(t, map[string]any{"bold": false}, text["style"])
	})

	t.Run("nil document", func(t *testing.T) {
		t.Parallel()
		_, err := chatjson.MarshalDocument(nil)
		assert.ErrorIs(t, err, chatmark.ErrNilDocument)
	})

	t.Run("nil element is an error", func(t *testing.T) {
		t.Parallel()
		doc := &chatmark.Document{Children: []chatmark.Element{nil}}
		_, err := chatjson.MarshalDocument(doc)
		assert.ErrorContains(t, err, "element 0")
	})
}

func TestMarshalTree(t *testing.T) {
	t.Parallel()

	list := chatmark.NewNode(chatmark.KindList)
	list.Attrs.Ordered = true
	list.Attrs.Start = 3
	list.AppendChild(chatmark.NewNode(chatmark.KindListItem).AppendChild(chatmark.NewText("one")))
	doc := chatmark.AnnotateListItems(chatmark.NewDocument().AppendChild(list))

	data, err := chatjson.MarshalTree(doc)
	require.NoError(t, err)
	out := decode(t, data)
	tree := out["tree"].(map[string]any)
	assert.Equal(t, "document", tree["kind"])

	l := child(t, tree, 0)
	assert.Equal(t, "list", l["kind"])
	assert.Equal(t, true, l["ordered"])
	assert.Equal(t, float64(3), l["start"])

	item := child(t, tree, 0, 0)
	assert.Equal(t, float64(0), item["index"])
	assert.NotContains(t, item, "continue")
	assert.Equal(t, "one", child(t, item, 0)["literal"])

	_, err = chatjson.MarshalTree(nil)
	assert.ErrorIs(t, err, chatmark.ErrNilDocument)
}

func TestLoadImages(t *testing.T) {
	t.Parallel()

	t.Run("reads metadata", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "images.json")
		data := `{"https://x.com/a.png": {"width": 800, "height": 400, "format": "png"}, "b.gif": {"width": 10, "height": 10, "frame_count": 4}}`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		images, err := chatjson.LoadImages(path)
		require.NoError(t, err)
		assert.Equal(t, chatmark.ImageMetadata{Width: 800, Height: 400, Format: "png"}, images["https://x.com/a.png"])
		assert.Equal(t, 4, images["b.gif"].FrameCount)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := chatjson.LoadImages(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		_, err := chatjson.UnmarshalImages([]byte(`{"a.png": 3}`))
		assert.Error(t, err)
	})

	t.Run("negative size", func(t *testing.T) {
		t.Parallel()
		_, err := chatjson.UnmarshalImages([]byte(`{"a.png": {"width": -1, "height": 2}}`))
		assert.ErrorContains(t, err, "negative size")
	})
}
