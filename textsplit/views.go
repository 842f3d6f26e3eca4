package textsplit

import (
	"errors"
	"fmt"
	"iter"

	"github.com/Alfex4936/textsplit/internal/growth"
)

// View is a half-open byte range [Begin, End) into a Buffer. It owns nothing.
type View struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Len returns End - Begin.
func (v View) Len() int { return v.End - v.Begin }

// Views is a growable array of View bound to the Buffer it indexes.
//
// It records the buffer's generation when created; once the buffer is
// written to or cleared, every byte accessor returns ErrStaleView.
type Views struct {
	vec growth.Vec[View]
	src *Buffer
	gen uint64
}

// NewViews returns an empty array over src's current contents.
func NewViews(src *Buffer, p Policy) *Views {
	v := &Views{vec: growth.NewVec[View](p), src: src}
	if src != nil {
		v.gen = src.gen
	}
	return v
}

// Append stores a copy of view, growing the array when full.
func (v *Views) Append(view View) error {
	if err := v.check(); err != nil {
		return err
	}
	if view.Begin < 0 || view.Begin > view.End || view.End > v.src.Len() {
		return fmt.Errorf("%w: view [%d, %d) outside buffer of %d bytes",
			ErrInvalidArgument, view.Begin, view.End, v.src.Len())
	}
	return v.push(view)
}

// push skips the bounds check; Split only produces in-range views.
func (v *Views) push(view View) error {
	if err := v.vec.Push(view); err != nil {
		if errors.Is(err, growth.ErrLimit) {
			return fmt.Errorf("%w: view array stuck at %d entries: %w", ErrOutOfMemory, v.vec.Cap(), err)
		}
		return err
	}
	return nil
}

// Len returns the number of views.
func (v *Views) Len() int { return v.vec.Len() }

// Cap returns the allocated capacity.
func (v *Views) Cap() int { return v.vec.Cap() }

// At returns the i-th view. It panics if i is out of range.
func (v *Views) At(i int) View { return v.vec.Items()[i] }

// Source returns the buffer the views index.
func (v *Views) Source() *Buffer { return v.src }

// Valid reports whether the source buffer is unchanged since the views were made.
func (v *Views) Valid() bool { return v.check() == nil }

// Bytes returns the bytes of the i-th view, aliasing the source buffer.
func (v *Views) Bytes(i int) ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	view := v.At(i)
	return v.src.Bytes()[view.Begin:view.End:view.End], nil
}

// String returns a copy of the i-th view as a string.
func (v *Views) String(i int) (string, error) {
	b, err := v.Bytes(i)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Strings copies every view out of the buffer.
func (v *Views) Strings() ([]string, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	out := make([]string, 0, v.Len())
	for _, b := range v.All() {
		out = append(out, string(b))
	}
	return out, nil
}

// All yields each view's index and bytes. It yields nothing once the views
// are stale; call Valid first when that matters.
func (v *Views) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		if v.check() != nil {
			return
		}
		data := v.src.Bytes()
		for i, view := range v.vec.Items() {
			if !yield(i, data[view.Begin:view.End:view.End]) {
				return
			}
		}
	}
}

// Join concatenates the views with sep in between. For views produced by
// Split, Join(sep) reproduces the source unless it ended with sep.
func (v *Views) Join(sep []byte) ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	size := 0
	if v.Len() > 0 {
		size = (v.Len() - 1) * len(sep)
	}
	for _, view := range v.vec.Items() {
		size += view.Len()
	}
	out := make([]byte, 0, size)
	for i, b := range v.All() {
		if i > 0 {
			out = append(out, sep...)
		}
		out = append(out, b...)
	}
	return out, nil
}

func (v *Views) check() error {
	if v.src == nil {
		return fmt.Errorf("%w: views have no source buffer", ErrInvalidArgument)
	}
	if v.src.gen != v.gen {
		return ErrStaleView
	}
	return nil
}
