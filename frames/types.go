// Package frames defines the contracts and sentinel errors for the lazy
// multi-frame trajectory reader of github.com/mdkit/simbox.
package frames

import "errors"

// Sentinel errors for frame access.
var (
	// ErrNoIndex indicates Open was called without a frame-splitting
	// predicate, so no frame index could be built.
	ErrNoIndex = errors.New("frames: no frame-splitting predicate given")
	// ErrFrameRange indicates a frame index or slice outside the indexed
	// range.
	ErrFrameRange = errors.New("frames: frame index out of range")
)

// SplitFunc reports whether a line (terminator included) starts a new
// frame. Open calls it once per line while building the byte-offset
// index.
type SplitFunc func(line []byte) bool

// Parser consumes the decoded text of a single frame. It is the contract
// between the reader and format-specific decoders: the reader locates
// and decodes frames, the parser interprets them.
type Parser interface {
	Parse(text string) error
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(text string) error

// Parse implements Parser.
func (f ParserFunc) Parse(text string) error { return f(text) }
