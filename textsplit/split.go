package textsplit

import (
	"fmt"

	"github.com/Alfex4936/textsplit/internal/kmp"
)

// Split cuts src at every exact occurrence of sep.
//
// The separator bytes are dropped and fields are kept even when empty, with
// two boundary rules: an empty buffer yields no views, and a trailing
// separator does not produce a trailing empty view. The views reference src
// in place and go stale as soon as src is modified.
//
// src is never mutated. p governs the growth of the returned array.
func Split(src *Buffer, sep []byte, p Policy) (*Views, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	m, err := kmp.New(sep)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	views := NewViews(src, p)
	data := src.Bytes()
	end := len(data)
	for cursor := 0; cursor != end; {
		at := m.Find(data, cursor)
		if err := views.push(View{Begin: cursor, End: at}); err != nil {
			return nil, err
		}
		if at == end {
			cursor = end
		} else {
			cursor = at + m.Len()
		}
	}
	return views, nil
}

// SplitString copies s into a fresh buffer, splits it on sep and returns
// the fields as strings.
func SplitString(s, sep string, cfg Config) ([]string, error) {
	if sep == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, kmp.ErrEmptyPattern)
	}
	buf := NewBuffer(cfg.Bytes)
	if _, err := buf.WriteString(s); err != nil {
		return nil, err
	}
	views, err := Split(buf, []byte(sep), cfg.Views)
	if err != nil {
		return nil, err
	}
	return views.Strings()
}
