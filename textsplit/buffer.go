// Package textsplit reads byte streams into a growable buffer and splits
// them on an exact separator into views that reference the buffer in place.
package textsplit

import (
	"errors"
	"fmt"
	"io"

	"github.com/Alfex4936/textsplit/internal/growth"
)

// Policy parameterizes buffer growth.
type Policy = growth.Policy

// Buffer owns a contiguous, growable block of bytes. It is not safe for
// concurrent use.
//
// Every mutation bumps the buffer's generation, which is how Views detect
// that the bytes they point at may have moved.
type Buffer struct {
	vec growth.Vec[byte]
	gen uint64
}

// NewBuffer returns an empty buffer. Nothing is allocated until the first write.
func NewBuffer(p Policy) *Buffer {
	return &Buffer{vec: growth.NewVec[byte](p)}
}

// Len returns the number of bytes stored.
func (b *Buffer) Len() int { return b.vec.Len() }

// Cap returns the allocated capacity.
func (b *Buffer) Cap() int { return b.vec.Cap() }

// Bytes returns the stored bytes without copying. The slice aliases the
// buffer and is only valid until the next ReadFrom, Write or Clear.
func (b *Buffer) Bytes() []byte { return b.vec.Items() }

// Generation identifies the current contents; it changes on every mutation.
func (b *Buffer) Generation() uint64 { return b.gen }

// ReadFrom appends everything r yields until io.EOF.
//
// Growth happens before each read whenever the buffer is full. On failure the
// bytes already appended stay in the buffer and n reports them; the error is
// ErrOutOfMemory when growth failed and ErrIO when r failed.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	if r == nil {
		return 0, fmt.Errorf("%w: nil reader", ErrInvalidArgument)
	}
	for {
		if b.vec.Free() == 0 {
			if err := b.grow(); err != nil {
				return n, err
			}
		}
		m, rerr := r.Read(b.vec.Spare())
		if m > 0 {
			b.vec.Commit(m)
			b.gen++
			n += int64(m)
		}
		if rerr == io.EOF {
			return n, nil
		}
		if rerr != nil {
			return n, fmt.Errorf("%w: %w", ErrIO, rerr)
		}
	}
}

// Write appends p. When growth fails part-way, the prefix that fit is kept
// and n < len(p) is returned together with ErrOutOfMemory.
func (b *Buffer) Write(p []byte) (n int, err error) {
	for n < len(p) {
		if b.vec.Free() == 0 {
			if err := b.grow(); err != nil {
				return n, err
			}
		}
		m := copy(b.vec.Spare(), p[n:])
		b.vec.Commit(m)
		b.gen++
		n += m
	}
	return n, nil
}

// WriteString is Write for strings.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Clear releases the storage and returns the buffer to its empty state.
func (b *Buffer) Clear() {
	if b.vec.Cap() == 0 {
		return
	}
	b.vec.Reset()
	b.gen++
}

func (b *Buffer) grow() error {
	if err := b.vec.Grow(); err != nil {
		if errors.Is(err, growth.ErrLimit) {
			return fmt.Errorf("%w: buffer stuck at %d bytes: %w", ErrOutOfMemory, b.vec.Cap(), err)
		}
		return err
	}
	b.gen++
	return nil
}
