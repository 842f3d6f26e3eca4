package growth

import "fmt"

// Vec is an owned, contiguous, growable sequence. The zero value is an empty
// Vec using DefaultPolicy.
//
// Growth replaces the backing array: slices previously returned by Items or
// Spare keep pointing at the old array and must not be used afterwards.
type Vec[T any] struct {
	items  []T
	policy Policy
	set    bool
}

// NewVec returns an empty Vec that grows according to p.
func NewVec[T any](p Policy) Vec[T] {
	return Vec[T]{policy: p.Normalize(), set: true}
}

// Policy returns the policy in effect.
func (v *Vec[T]) Policy() Policy {
	if !v.set {
		return DefaultPolicy()
	}
	return v.policy
}

func (v *Vec[T]) Len() int { return len(v.items) }
func (v *Vec[T]) Cap() int { return cap(v.items) }

// Free is the number of elements that fit before the next growth.
func (v *Vec[T]) Free() int { return cap(v.items) - len(v.items) }

// Items returns the stored elements without copying.
func (v *Vec[T]) Items() []T { return v.items }

// Spare returns the unused tail [Len, Cap) for direct writes; follow with Commit.
func (v *Vec[T]) Spare() []T { return v.items[len(v.items):cap(v.items)] }

// Commit extends Len by n elements previously written into Spare.
func (v *Vec[T]) Commit(n int) {
	if n < 0 || n > v.Free() {
		panic(fmt.Sprintf("growth: commit %d exceeds free space %d", n, v.Free()))
	}
	v.items = v.items[:len(v.items)+n]
}

// Grow performs exactly one growth step. On error the Vec is unchanged.
func (v *Vec[T]) Grow() error {
	next, err := Next(cap(v.items), v.Policy())
	if err != nil {
		return err
	}
	return v.realloc(next)
}

// Reserve makes room for at least n more elements, growing step by step
// along the policy curve but allocating once. If the policy cannot reach the
// required capacity the Vec is left unchanged and ErrLimit is returned.
func (v *Vec[T]) Reserve(n int) error {
	if n <= v.Free() {
		return nil
	}
	need := len(v.items) + n
	if need < len(v.items) {
		return ErrLimit
	}
	target := cap(v.items)
	for target < need {
		next, err := Next(target, v.Policy())
		if err != nil {
			return err
		}
		target = next
	}
	return v.realloc(target)
}

// Push appends x, growing first when the Vec is full.
func (v *Vec[T]) Push(x T) error {
	if v.Free() == 0 {
		if err := v.Grow(); err != nil {
			return err
		}
	}
	v.items = append(v.items, x)
	return nil
}

// Reset releases the backing array.
func (v *Vec[T]) Reset() {
	v.items = nil
}

func (v *Vec[T]) realloc(capacity int) (err error) {
	// make panics rather than failing for lengths the runtime refuses.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrLimit, r)
		}
	}()
	items := make([]T, len(v.items), capacity)
	copy(items, v.items)
	v.items = items
	return nil
}
