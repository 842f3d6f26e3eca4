package textsplit

import "errors"

var (
	// ErrOutOfMemory signals that a buffer or view array could not grow.
	// Data committed before the failed growth is kept.
	ErrOutOfMemory = errors.New("textsplit: out of memory")

	// ErrIO signals that the byte source failed mid-read.
	ErrIO = errors.New("textsplit: read from source failed")

	// ErrInvalidArgument rejects empty separators and nil inputs before any mutation.
	ErrInvalidArgument = errors.New("textsplit: invalid argument")

	// ErrStaleView signals that a view's source buffer changed after the split.
	ErrStaleView = errors.New("textsplit: view outlived its source buffer")
)
