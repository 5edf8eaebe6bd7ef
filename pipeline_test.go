package chatmark_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/chatmark"
	"github.com/fwojciec/chatmark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// treeParser returns a parser that builds a fresh tree on every call.
func treeParser(build func() *chatmark.Node) *mock.Parser {
	return &mock.Parser{
		ParseFn: func(source string, cfg chatmark.ParseConfig) (*chatmark.Node, error) {
			return build(), nil
		},
	}
}

func TestNewPipeline(t *testing.T) {
	t.Parallel()

	_, err := chatmark.NewPipeline(treeParser(chatmark.NewDocument), testOptions(),
		chatmark.WithRenderFunc(chatmark.KindTable, nil))
	assert.ErrorIs(t, err, chatmark.ErrMissingRenderFunc)
}

func TestPipeline_Render(t *testing.T) {
	t.Parallel()

	t.Run("passes parse config to parser", func(t *testing.T) {
		t.Parallel()
		var got chatmark.ParseConfig
		p := &mock.Parser{
			ParseFn: func(source string, cfg chatmark.ParseConfig) (*chatmark.Node, error) {
				got = cfg
				return doc(para(text(source))), nil
			},
		}
		opts := testOptions()
		opts.MinimumHashtagLength = 2
		opts.AutolinkedSchemes = []string{"https"}
		pl, err := chatmark.NewPipeline(p, opts)
		require.NoError(t, err)

		res, err := pl.Render("hello")
		require.NoError(t, err)
		assert.Equal(t, 2, got.MinimumHashtagLength)
		assert.False(t, got.AllowsURL("ftp://x"))
		first := res.Root.Children[0].(*chatmark.Paragraph)
		assert.Equal(t, "hello", first.Children[0].(*chatmark.Text).Content)
	})

	t.Run("parse errors are wrapped", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("boom")
		p := &mock.Parser{
			ParseFn: func(source string, cfg chatmark.ParseConfig) (*chatmark.Node, error) {
				return nil, wantErr
			},
		}
		pl, err := chatmark.NewPipeline(p, testOptions())
		require.NoError(t, err)
		_, err = pl.Render("x")
		assert.ErrorIs(t, err, wantErr)
		assert.ErrorIs(t, err, chatmark.ErrParse)
	})

	t.Run("nil tree is an error", func(t *testing.T) {
		t.Parallel()
		p := &mock.Parser{
			ParseFn: func(source string, cfg chatmark.ParseConfig) (*chatmark.Node, error) {
				return nil, nil
			},
		}
		pl, err := chatmark.NewPipeline(p, testOptions())
		require.NoError(t, err)
		_, err = pl.Render("x")
		assert.ErrorIs(t, err, chatmark.ErrNilDocument)
	})

	t.Run("applies passes then edited indicator", func(t *testing.T) {
		t.Parallel()
		opts := testOptions()
		opts.Edited = true
		opts.MentionKeys = []chatmark.MentionKey{{Key: "@bob"}}
		pl, err := chatmark.NewPipeline(treeParser(func() *chatmark.Node {
			return doc(para(text("hi "), text("@bob"), image("big.png"), text("bye")))
		}), opts)
		require.NoError(t, err)

		tree, err := pl.Tree("ignored")
		require.NoError(t, err)
		assert.Equal(t,
			"document(paragraph(text:hi ,mention_highlight(text:@bob)),image,paragraph(text:bye,edited_indicator))",
			dump(tree))

		res, err := pl.Render("ignored")
		require.NoError(t, err)
		require.Len(t, res.Root.Children, 3)
		assert.IsType(t, &chatmark.Image{}, res.Root.Children[1])
		last := res.Root.Children[2].(*chatmark.Paragraph)
		assert.IsType(t, &chatmark.EditedIndicator{}, last.Children[len(last.Children)-1])
	})

	t.Run("edited document ending in a break gets its own paragraph", func(t *testing.T) {
		t.Parallel()
		opts := testOptions()
		opts.Edited = true
		pl, err := chatmark.NewPipeline(treeParser(func() *chatmark.Node {
			return doc(para(text("a")), node(chatmark.KindThematicBreak))
		}), opts)
		require.NoError(t, err)
		res, err := pl.Render("")
		require.NoError(t, err)
		require.Len(t, res.Root.Children, 3)
		last := res.Root.Children[2].(*chatmark.Paragraph)
		require.Len(t, last.Children, 1)
		// The synthetic paragraph is still a paragraph, so the spacer applies.
		assert.Equal(t, " ", last.Children[0].(*chatmark.EditedIndicator).Spacer)
	})

	t.Run("concurrent renders use independent trees", func(t *testing.T) {
		t.Parallel()
		pl, err := chatmark.NewPipeline(treeParser(func() *chatmark.Node {
			return doc(para(text("a "), image("big.png"), text(" b")))
		}), testOptions())
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]*chatmark.Result, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := pl.Render("")
				assert.NoError(t, err)
				results[i] = res
			}()
		}
		wg.Wait()
		for _, res := range results {
			require.NotNil(t, res)
			assert.Len(t, res.Root.Children, 3)
		}
	})
}
