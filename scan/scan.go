// Package scan searches text for occurrences of the elements of a set.
//
// A Scanner compiles every element into one Aho-Corasick automaton, so a
// single left-to-right pass over the text finds matches of all elements at
// once, independently of how many there are.
package scan

import (
	"bytes"
	"cmp"
	"iter"
	"slices"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/mafsa/fsa"
)

// Source is anything that can enumerate its elements, such as *mafsa.Set,
// *mafsa.IndexedSet or *fsa.Automaton.
type Source[T any] interface {
	All() iter.Seq[[]T]
}

// Match is the byte span [Start, End) of an element occurrence in the text.
type Match struct {
	Start int
	End   int
}

// Len returns the match length in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Scanner finds set elements in byte text.
//
// The Aho-Corasick automaton locates candidate occurrences; a byte-level
// automaton over the same patterns then settles which element starts
// leftmost and extends it to the longest one starting there.
//
// A Scanner is immutable and safe for concurrent use.
type Scanner struct {
	ac       *ahocorasick.Automaton
	prefixes *fsa.Automaton[byte]
	maxLen   int
	patterns int
}

// Runes encodes a rune sequence as UTF-8.
func Runes(seq []rune) []byte {
	return []byte(string(seq))
}

// Bytes is the identity encoder for byte sequences.
func Bytes(seq []byte) []byte {
	return seq
}

// NewScanner builds a scanner over the elements of set, each converted to
// its byte form by encode.
//
// Elements with the same encoding are searched once. The empty element, if
// present, never matches. A set without non-empty elements yields a scanner
// that matches nothing.
func NewScanner[T any](set Source[T], encode func([]T) []byte) (*Scanner, error) {
	var patterns [][]byte
	for seq := range set.All() {
		if p := encode(seq); len(p) > 0 {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return &Scanner{}, nil
	}
	slices.SortFunc(patterns, bytes.Compare)
	patterns = slices.CompactFunc(patterns, bytes.Equal)

	prefixes, err := fsa.Build(patterns, cmp.Compare[byte], fsa.DefaultConfig())
	if err != nil {
		return nil, err
	}

	maxLen := 0
	builder := ahocorasick.NewBuilder()
	for _, p := range patterns {
		builder.AddPattern(p)
		maxLen = max(maxLen, len(p))
	}
	ac, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Scanner{ac: ac, prefixes: prefixes, maxLen: maxLen, patterns: len(patterns)}, nil
}

// Len returns the number of compiled patterns.
func (s *Scanner) Len() int {
	return s.patterns
}

// Find returns the leftmost occurrence of an element in text starting at or
// after byte offset at, or false if there is none. Of several elements
// starting at that position, the longest is reported.
func (s *Scanner) Find(text []byte, at int) (Match, bool) {
	if s.ac == nil || at < 0 || at >= len(text) {
		return Match{}, false
	}
	m := s.ac.Find(text, at)
	if m == nil {
		return Match{}, false
	}

	// No occurrence ends before m does, so an earlier start has to lie
	// within one pattern length of m.End
	for p := max(at, m.End-s.maxLen); p <= m.Start; p++ {
		if n, ok := s.prefixes.LongestPrefix(text[p:]); ok {
			return Match{Start: p, End: p + n}, true
		}
	}
	return Match{Start: m.Start, End: m.End}, true
}

// FindAll returns every non-overlapping occurrence of an element in text,
// scanning left to right.
func (s *Scanner) FindAll(text []byte) []Match {
	var out []Match
	for at := 0; at < len(text); {
		m, ok := s.Find(text, at)
		if !ok {
			break
		}
		out = append(out, m)
		at = max(m.End, m.Start+1)
	}
	return out
}

// IsMatch reports whether any element occurs in text.
func (s *Scanner) IsMatch(text []byte) bool {
	if s.ac == nil {
		return false
	}
	return s.ac.IsMatch(text)
}
