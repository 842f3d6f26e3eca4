// Package kmp implements Knuth-Morris-Pratt exact byte-sequence search.
//
// A Matcher is built once per pattern in O(m) and then scans any haystack in
// O(n), never re-reading a haystack byte it has already matched.
package kmp

import "errors"

// ErrEmptyPattern is returned by New for a zero-length pattern.
var ErrEmptyPattern = errors.New("kmp: empty pattern")

// FailureTable returns T where T[i] is the length of the longest proper
// prefix of pattern[:i+1] that is also a suffix of it. T[0] is always 0.
// It returns nil for an empty pattern.
func FailureTable(pattern []byte) []int {
	if len(pattern) == 0 {
		return nil
	}
	t := make([]int, len(pattern))
	k := 0
	for i := 1; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = t[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		t[i] = k
	}
	return t
}

// Matcher searches for one fixed pattern.
type Matcher struct {
	pattern []byte
	table   []int
}

// New copies pattern and builds its failure table.
func New(pattern []byte) (*Matcher, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	p := make([]byte, len(pattern))
	copy(p, pattern)
	return &Matcher{pattern: p, table: FailureTable(p)}, nil
}

// Len returns the pattern length.
func (m *Matcher) Len() int { return len(m.pattern) }

// Find returns the offset of the first occurrence of the pattern in
// haystack at or after from. When there is none it returns len(haystack),
// the end sentinel.
func (m *Matcher) Find(haystack []byte, from int) int {
	n := len(haystack)
	if from < 0 {
		from = 0
	}
	if from > n || n-from < len(m.pattern) {
		return n
	}

	k := 0 // bytes of pattern matched so far
	for i := from; i < n; i++ {
		c := haystack[i]
		for k > 0 && c != m.pattern[k] {
			k = m.table[k-1]
		}
		if c == m.pattern[k] {
			k++
		}
		if k == len(m.pattern) {
			return i - k + 1
		}
	}
	return n
}

// Index is like bytes.Index: it returns -1 when the pattern is absent.
func (m *Matcher) Index(haystack []byte) int {
	i := m.Find(haystack, 0)
	if i == len(haystack) {
		return -1
	}
	return i
}
