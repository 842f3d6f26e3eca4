// Package growth holds the amortized-growth arithmetic shared by every
// growable container in textsplit, plus the generic owned sequence built on it.
package growth

import (
	"errors"
	"math"
)

const (
	DefaultInitialCapacity = 4096
	DefaultGrowthFactor    = 2.0
)

// ErrLimit is returned when a container cannot grow any further.
var ErrLimit = errors.New("growth: capacity limit reached")

// Policy parameterizes growth. It carries no state of its own.
type Policy struct {
	InitialCapacity int     `json:"initialCapacity" toml:"initial_capacity" yaml:"initial_capacity"`
	GrowthFactor    float64 `json:"growthFactor" toml:"growth_factor" yaml:"growth_factor"`
	// MaxCapacity caps the element count a container may hold; 0 = unlimited.
	MaxCapacity int `json:"maxCapacity,omitempty" toml:"max_capacity" yaml:"max_capacity"`
}

// DefaultPolicy returns {4096, 2.0, unlimited}.
func DefaultPolicy() Policy {
	return Policy{
		InitialCapacity: DefaultInitialCapacity,
		GrowthFactor:    DefaultGrowthFactor,
	}
}

// Normalize clamps out-of-range fields so that growth always makes progress.
func (p Policy) Normalize() Policy {
	if p.InitialCapacity < 1 {
		p.InitialCapacity = 1
	}
	// NaN fails every comparison, so test for "not >= 1" instead of "< 1".
	if !(p.GrowthFactor >= 1) {
		p.GrowthFactor = 1
	}
	if p.MaxCapacity < 0 {
		p.MaxCapacity = 0
	}
	return p
}

// Next returns the capacity a container of the given capacity grows to.
//
// An empty container jumps to InitialCapacity. Otherwise the new capacity is
// ceil(capacity*GrowthFactor), never less than capacity+1. The result is
// clamped to MaxCapacity; once capacity has reached it, Next returns ErrLimit.
func Next(capacity int, p Policy) (int, error) {
	p = p.Normalize()
	if capacity < 0 {
		capacity = 0
	}

	next := p.InitialCapacity
	if capacity > 0 {
		if capacity == math.MaxInt {
			return capacity, ErrLimit
		}
		f := math.Ceil(float64(capacity) * p.GrowthFactor)
		if f >= float64(math.MaxInt) {
			next = math.MaxInt
		} else {
			next = int(f)
		}
		if next < capacity+1 {
			next = capacity + 1
		}
	}

	if p.MaxCapacity > 0 {
		if capacity >= p.MaxCapacity {
			return capacity, ErrLimit
		}
		if next > p.MaxCapacity {
			next = p.MaxCapacity
		}
	}
	return next, nil
}
