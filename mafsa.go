// Package mafsa provides immutable sorted sets of sequences backed by a
// minimal acyclic finite-state automaton (MA-FSA).
//
// A set is built once from a collection of distinct sequences over any symbol
// type and a comparator on symbols. Common prefixes and common suffixes are
// shared, so large dictionaries take a fraction of the memory of a sorted
// slice or a map while still answering:
//   - Membership in O(length)
//   - Ordered enumeration, optionally restricted to a prefix
//   - Order statistics (IndexedSet): i-th element, rank of an element, and
//     ranges of positions
//
// Basic usage:
//
//	set, err := mafsa.CreateOrdered([][]rune{
//	    []rune("nation"),
//	    []rune("ration"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(set.Contains([]rune("ration"))) // true
//	for word := range set.All() {
//	    fmt.Println(string(word))
//	}
//
// Advanced usage:
//
//	// Custom configuration
//	config := mafsa.DefaultConfig().WithAllowEmpty(true)
//	set, err := mafsa.CreateIndexedWithConfig(words, collator.Compare, config)
//
// Elements are ordered lexicographically by the comparator; a sequence sorts
// before all of its extensions. Sets are read-only after construction and
// safe for concurrent use, provided the comparator is.
package mafsa

import (
	"cmp"
	"iter"

	"github.com/coregx/mafsa/fsa"
)

// Error sentinels, matched with errors.Is.
var (
	ErrEmptySequence    = fsa.ErrEmptySequence
	ErrDuplicateKey     = fsa.ErrDuplicateKey
	ErrIndexOutOfRange  = fsa.ErrIndexOutOfRange
	ErrInvalidConfig    = fsa.ErrInvalidConfig
	ErrComparerRequired = fsa.ErrComparerRequired
	ErrCorrupt          = fsa.ErrCorrupt
)

// Set is an immutable set of sequences of T.
//
// A Set is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	set := mafsa.MustCreate(mafsa.Runes("tap", "taps", "top"), cmp.Compare[rune])
//	if set.Contains([]rune("taps")) {
//	    println("found!")
//	}
type Set[T any] struct {
	a *fsa.Automaton[T]
}

// IndexedSet is a Set that additionally answers order-statistic queries.
// The per-transition counts it needs cost one int per transition.
type IndexedSet[T any] struct {
	Set[T]
	x *fsa.Index[T]
}

// Create builds a set of the given sequences, ordered by cmp.
//
// Returns an error if a sequence is empty (see Config.AllowEmpty) or appears
// more than once; the first offending sequence in input order is reported.
//
// Example:
//
//	set, err := mafsa.Create(mafsa.Runes("b", "a"), cmp.Compare[rune])
func Create[T any](seqs [][]T, cmp func(a, b T) int) (*Set[T], error) {
	return CreateWithConfig(seqs, cmp, DefaultConfig())
}

// CreateOrdered builds a set over a naturally ordered symbol type.
func CreateOrdered[T cmp.Ordered](seqs [][]T) (*Set[T], error) {
	return Create(seqs, cmp.Compare[T])
}

// MustCreate builds a set and panics if it fails.
//
// This is useful for fixed word lists known to be valid at compile time.
//
// Example:
//
//	var keywords = mafsa.MustCreate(mafsa.Runes("break", "case", "chan"), cmp.Compare[rune])
func MustCreate[T any](seqs [][]T, cmp func(a, b T) int) *Set[T] {
	s, err := Create(seqs, cmp)
	if err != nil {
		panic("mafsa: Create: " + err.Error())
	}
	return s
}

// CreateWithConfig builds a set with a custom configuration.
//
// Example:
//
//	config := mafsa.DefaultConfig()
//	config.BinarySearchThreshold = 8
//	set, err := mafsa.CreateWithConfig(seqs, cmp.Compare[byte], config)
func CreateWithConfig[T any](seqs [][]T, cmp func(a, b T) int, config fsa.Config) (*Set[T], error) {
	a, err := fsa.Build(seqs, cmp, config)
	if err != nil {
		return nil, err
	}
	return &Set[T]{a: a}, nil
}

// CreateIndexed builds an indexed set of the given sequences, ordered by cmp.
func CreateIndexed[T any](seqs [][]T, cmp func(a, b T) int) (*IndexedSet[T], error) {
	return CreateIndexedWithConfig(seqs, cmp, DefaultConfig())
}

// CreateIndexedWithConfig builds an indexed set with a custom configuration.
func CreateIndexedWithConfig[T any](seqs [][]T, cmp func(a, b T) int, config fsa.Config) (*IndexedSet[T], error) {
	s, err := CreateWithConfig(seqs, cmp, config)
	if err != nil {
		return nil, err
	}
	return s.Indexed(), nil
}

// FromParts reloads a set from flat arrays previously obtained from Parts,
// typically after a round trip through an external codec.
//
// cmp must be the comparator the set was built with. Returns an error of
// kind ComparerRequired if cmp is nil and Corrupt if the arrays fail
// validation.
func FromParts[T any](parts fsa.Parts[T], cmp func(a, b T) int) (*Set[T], error) {
	return FromPartsWithConfig(parts, cmp, DefaultConfig())
}

// FromPartsWithConfig reloads a set with a custom configuration, e.g. the
// one it was built with. Only the lookup settings apply; AllowEmpty is
// carried by the parts themselves.
func FromPartsWithConfig[T any](parts fsa.Parts[T], cmp func(a, b T) int, config fsa.Config) (*Set[T], error) {
	a, err := fsa.FromParts(parts, cmp, config)
	if err != nil {
		return nil, err
	}
	return &Set[T]{a: a}, nil
}

// IndexedFromParts is like FromParts but returns an indexed set.
func IndexedFromParts[T any](parts fsa.Parts[T], cmp func(a, b T) int) (*IndexedSet[T], error) {
	return IndexedFromPartsWithConfig(parts, cmp, DefaultConfig())
}

// IndexedFromPartsWithConfig is like FromPartsWithConfig but returns an
// indexed set.
func IndexedFromPartsWithConfig[T any](parts fsa.Parts[T], cmp func(a, b T) int, config fsa.Config) (*IndexedSet[T], error) {
	s, err := FromPartsWithConfig(parts, cmp, config)
	if err != nil {
		return nil, err
	}
	return s.Indexed(), nil
}

// DefaultConfig returns the default configuration for construction.
//
// Users can customize this and pass it to CreateWithConfig.
func DefaultConfig() fsa.Config {
	return fsa.DefaultConfig()
}

// Runes converts words to rune sequences, the usual element type for sets
// of text.
func Runes(words ...string) [][]rune {
	seqs := make([][]rune, len(words))
	for i, w := range words {
		seqs[i] = []rune(w)
	}
	return seqs
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int {
	return s.a.Len()
}

// Contains reports whether seq is an element of the set.
//
// Example:
//
//	set := mafsa.MustCreate(mafsa.Runes("ab"), cmp.Compare[rune])
//	set.Contains([]rune("ab")) // true
//	set.Contains([]rune("a"))  // false: a prefix is not an element
func (s *Set[T]) Contains(seq []T) bool {
	return s.a.Contains(seq)
}

// All returns every element in lexicographic order.
//
// Each yielded slice is freshly allocated and owned by the caller. Breaking
// out of the loop stops the enumeration.
func (s *Set[T]) All() iter.Seq[[]T] {
	return s.a.All()
}

// WithPrefix returns, in lexicographic order, every element starting with
// prefix, including prefix itself if it is an element.
//
// Example:
//
//	for word := range set.WithPrefix([]rune("ab")) {
//	    fmt.Println(string(word))
//	}
func (s *Set[T]) WithPrefix(prefix []T) iter.Seq[[]T] {
	return s.a.WithPrefix(prefix)
}

// Parts returns a copy of the set's flat arrays for external serialization.
func (s *Set[T]) Parts() fsa.Parts[T] {
	return s.a.Parts()
}

// Stats returns the statistics recorded while building the set.
func (s *Set[T]) Stats() fsa.BuildStats {
	return s.a.Stats()
}

// Automaton returns the underlying automaton.
func (s *Set[T]) Automaton() *fsa.Automaton[T] {
	return s.a
}

// Indexed computes the order-statistic index of s. The result shares the
// automaton with s.
func (s *Set[T]) Indexed() *IndexedSet[T] {
	return &IndexedSet[T]{Set: *s, x: fsa.NewIndex(s.a)}
}

// At returns the i-th element (0-based) in lexicographic order.
//
// Returns an error of kind IndexOutOfRange reporting i and Len() if i is not
// in [0, Len()).
func (s *IndexedSet[T]) At(i int) ([]T, error) {
	return s.x.At(i)
}

// IndexOf returns the position of seq in lexicographic order, or (-1, false)
// if seq is not an element.
func (s *IndexedSet[T]) IndexOf(seq []T) (int, bool) {
	return s.x.IndexOf(seq)
}

// Range returns the elements with positions in [from, to), in order.
// Bounds are clamped to [0, Len()).
//
// Example:
//
//	// Second page of 20
//	for word := range set.Range(20, 40) {
//	    fmt.Println(string(word))
//	}
func (s *IndexedSet[T]) Range(from, to int) iter.Seq[[]T] {
	return s.x.Range(from, to)
}
