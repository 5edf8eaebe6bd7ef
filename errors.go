package chatmark

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrMissingRenderFunc indicates a renderer was built without an entry
	// for some node kind.
	ErrMissingRenderFunc = errors.New("missing render func")

	// ErrNilDocument indicates a nil tree was passed to the renderer.
	ErrNilDocument = errors.New("nil document")

	// ErrParse indicates the parser failed to produce a tree.
	ErrParse = errors.New("parse failed")
)
