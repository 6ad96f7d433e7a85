package fsa

import (
	"slices"

	"github.com/coregx/mafsa/internal/conv"
)

// Alphabet is the sorted symbol table of an automaton.
//
// Transitions store a symbol's rank (its position in the table) instead of
// the symbol itself. Because ranks follow the comparator order, keeping each
// state's transitions sorted by rank is enough to enumerate the language in
// lexicographic order.
//
// Example for sequences "ba", "ab", "ca":
//   - Rank 0: 'a'
//   - Rank 1: 'b'
//   - Rank 2: 'c'
type Alphabet[T any] struct {
	// symbols holds the distinct symbols in comparator order
	symbols []T

	// cmp is the total order the table was sorted with
	cmp func(a, b T) int
}

// ExtractAlphabet scans every symbol of every sequence once and returns the
// deduplicated, comparator-sorted symbol table. An empty input yields an
// empty alphabet.
func ExtractAlphabet[T any](sequences [][]T, cmp func(a, b T) int) *Alphabet[T] {
	n := 0
	for _, seq := range sequences {
		n += len(seq)
	}

	symbols := make([]T, 0, n)
	for _, seq := range sequences {
		symbols = append(symbols, seq...)
	}
	slices.SortFunc(symbols, cmp)
	symbols = slices.CompactFunc(symbols, func(a, b T) bool {
		return cmp(a, b) == 0
	})

	return &Alphabet[T]{
		symbols: slices.Clip(symbols),
		cmp:     cmp,
	}
}

// Len returns the number of distinct symbols.
func (a *Alphabet[T]) Len() int {
	return len(a.symbols)
}

// Symbol returns the symbol with the given rank.
// Panics if rank >= Len().
func (a *Alphabet[T]) Symbol(rank uint32) T {
	return a.symbols[rank]
}

// Rank returns the rank of sym, or (0, false) if sym is not in the alphabet.
// This is an O(log n) binary search with the alphabet's comparator.
func (a *Alphabet[T]) Rank(sym T) (uint32, bool) {
	i, found := slices.BinarySearchFunc(a.symbols, sym, a.cmp)
	if !found {
		return 0, false
	}
	return conv.IntToUint32(i), true
}

// Symbols returns a copy of the symbol table in rank order.
func (a *Alphabet[T]) Symbols() []T {
	return slices.Clone(a.symbols)
}
