package chatmark

import "fmt"

// Parser turns markdown source into a document tree. Implementations
// must return a fresh tree on every call.
type Parser interface {
	Parse(source string, cfg ParseConfig) (*Node, error)
}

// Pipeline renders markdown documents: parse, transform, optionally mark
// as edited, render. It holds only configuration.
type Pipeline struct {
	parser   Parser
	renderer *Renderer
	opts     Options
}

// NewPipeline builds a pipeline. Renderer construction errors, such as a
// kind left without a render func, are reported here rather than per call.
func NewPipeline(parser Parser, opts Options, options ...RendererOption) (*Pipeline, error) {
	r, err := NewRenderer(opts, options...)
	if err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}
	return &Pipeline{parser: parser, renderer: r, opts: opts}, nil
}

// Options returns the options the pipeline was built with.
func (p *Pipeline) Options() Options { return p.opts }

// Render renders one document.
func (p *Pipeline) Render(source string) (*Result, error) {
	doc, err := p.Tree(source)
	if err != nil {
		return nil, err
	}
	return p.renderer.Render(doc)
}

// Tree parses source and applies every transform without rendering.
func (p *Pipeline) Tree(source string) (*Node, error) {
	doc, err := p.parser.Parse(source, p.opts.ParseConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if doc == nil {
		return nil, ErrNilDocument
	}
	doc = Transform(doc, p.opts.MentionKeys)
	if p.opts.Edited {
		doc = AppendEditedIndicator(doc)
	}
	return doc, nil
}
