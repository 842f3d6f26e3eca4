package kmp

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFailureTable(t *testing.T) {
	var tests = []struct {
		pattern string
		want    []int
	}{
		{"a", []int{0}},
		{"aaaa", []int{0, 1, 2, 3}},
		{"abab", []int{0, 0, 1, 2}},
		{"abcabd", []int{0, 0, 0, 1, 2, 0}},
		{"aabaaab", []int{0, 1, 0, 1, 2, 2, 3}},
		{"\r\n\r\n", []int{0, 0, 1, 2}},
	}
	for _, test := range tests {
		require.Equal(t, test.want, FailureTable([]byte(test.pattern)), "pattern %q", test.pattern)
	}
	require.Nil(t, FailureTable(nil))
	require.Nil(t, FailureTable([]byte{}))
}

func TestNewRejectsEmpty(t *testing.T) {
	m, err := New(nil)
	require.ErrorIs(t, err, ErrEmptyPattern)
	require.Nil(t, m)
}

func TestFindAtStart(t *testing.T) {
	m, err := New([]byte("ab"))
	require.NoError(t, err)
	require.Equal(t, 0, m.Find([]byte("abxxab"), 0))
	require.Equal(t, 4, m.Find([]byte("abxxab"), 1))
}

func TestFindSentinel(t *testing.T) {
	m, err := New([]byte("needle"))
	require.NoError(t, err)

	hay := []byte("haystack without it")
	require.Equal(t, len(hay), m.Find(hay, 0))
	require.Equal(t, -1, m.Index(hay))

	// pattern longer than what remains
	require.Equal(t, 3, m.Find([]byte("nee"), 0))
	require.Equal(t, 0, m.Find(nil, 0))
	// out-of-range start
	require.Equal(t, 6, m.Find([]byte("needle"), 7))
	require.Equal(t, 0, m.Find([]byte("needle"), -3))
}

func TestFindOverlappingPrefix(t *testing.T) {
	m, err := New([]byte("aab"))
	require.NoError(t, err)
	// the mismatch at index 2 must fall back instead of skipping past the match at 1
	require.Equal(t, 1, m.Find([]byte("aaab"), 0))

	m, err = New([]byte("abcabd"))
	require.NoError(t, err)
	require.Equal(t, 3, m.Find([]byte("abcabcabd"), 0))
}

func TestPatternIsCopied(t *testing.T) {
	p := []byte("xy")
	m, err := New(p)
	require.NoError(t, err)
	p[0] = 'z'
	require.Equal(t, 1, m.Index([]byte("-xy")))
}

func TestFindMatchesBytesIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	gen := func(n int) []byte {
		b := make([]byte, n)
		for i := range b {
			// small alphabet so that partial matches are frequent
			b[i] = "ab,"[rng.Intn(3)]
		}
		return b
	}

	for i := 0; i < 2000; i++ {
		pattern := gen(1 + rng.Intn(4))
		hay := gen(rng.Intn(64))
		from := rng.Intn(len(hay) + 1)

		m, err := New(pattern)
		require.NoError(t, err)

		want := len(hay)
		if j := bytes.Index(hay[from:], pattern); j >= 0 {
			want = from + j
		}
		require.Equal(t, want, m.Find(hay, from), "pattern %q hay %q from %d", pattern, hay, from)
	}
}
