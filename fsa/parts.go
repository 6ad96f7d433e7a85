package fsa

import (
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/mafsa/internal/conv"
	"github.com/coregx/mafsa/internal/sparse"
)

// Parts is the flat, codec-friendly form of an automaton.
//
// Persistence is left to external codecs: they store these arrays and hand
// them back to FromParts. The comparator is not part of Parts because it is
// generally not serializable; it must be supplied again on reload.
type Parts[T any] struct {
	// Alphabet holds the distinct symbols in comparator order
	Alphabet []T

	// Offsets[s] is where state s's transitions begin; state 0 is the root
	Offsets []uint32

	// Transitions is the flat transition array
	Transitions []Transition

	// Count is the number of accepted sequences
	Count int

	// EmptyAccepted reports whether the empty sequence is an element
	EmptyAccepted bool
}

// Parts returns a copy of the automaton's flat arrays.
func (a *Automaton[T]) Parts() Parts[T] {
	return Parts[T]{
		Alphabet:      a.alphabet.Symbols(),
		Offsets:       slices.Clone(a.offsets),
		Transitions:   slices.Clone(a.transitions),
		Count:         a.count,
		EmptyAccepted: a.emptyAccepted,
	}
}

// FromParts rebuilds an automaton from flat arrays, typically produced by
// Parts and round-tripped through a codec.
//
// cmp must order p.Alphabet exactly as the original comparator did; without
// it order-dependent queries cannot run, so a nil cmp is rejected with a
// ComparerRequired error. The arrays are copied and validated; any violated
// invariant yields a Corrupt error.
func FromParts[T any](p Parts[T], cmp func(a, b T) int, config Config) (*Automaton[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if cmp == nil {
		return nil, &Error{Kind: ComparerRequired, Message: ErrComparerRequired.Message}
	}
	if err := validateParts(p, cmp); err != nil {
		return nil, err
	}

	a := &Automaton[T]{
		alphabet: &Alphabet[T]{
			symbols: slices.Clone(p.Alphabet),
			cmp:     cmp,
		},
		offsets:       slices.Clone(p.Offsets),
		transitions:   slices.Clone(p.Transitions),
		count:         p.Count,
		emptyAccepted: p.EmptyAccepted,
		threshold:     config.BinarySearchThreshold,
	}
	a.stats = BuildStats{
		Sequences:    a.count,
		AlphabetSize: len(p.Alphabet),
		States:       len(a.offsets),
		Transitions:  len(a.transitions),
	}
	return a, nil
}

// validateParts checks every structural invariant query code relies on:
// sorted alphabet, monotone offsets, in-range and rank-sorted transitions,
// reachability and acyclicity from the root, no dead-end transitions, and a
// Count matching the language size.
func validateParts[T any](p Parts[T], cmp func(a, b T) int) error {
	for i := 1; i < len(p.Alphabet); i++ {
		if cmp(p.Alphabet[i-1], p.Alphabet[i]) >= 0 {
			return corruptError("alphabet not strictly sorted at rank %d", i)
		}
	}

	if len(p.Offsets) == 0 {
		return corruptError("no root state")
	}
	if p.Offsets[0] != 0 {
		return corruptError("root offset is %d, want 0", p.Offsets[0])
	}
	n := len(p.Transitions)
	for s := 1; s < len(p.Offsets); s++ {
		if p.Offsets[s] < p.Offsets[s-1] {
			return corruptError("offsets decrease at state %d", s)
		}
	}
	if conv.Uint32ToInt(p.Offsets[len(p.Offsets)-1]) > n {
		return corruptError("offsets exceed %d transitions", n)
	}

	alphabetLen := len(p.Alphabet)
	stateCount := len(p.Offsets)
	for s := range p.Offsets {
		lo, hi := stateRange(p.Offsets, n, StateID(conv.IntToUint32(s)))
		for t := lo; t < hi; t++ {
			tr := p.Transitions[t]
			if conv.Uint32ToInt(tr.Rank) >= alphabetLen {
				return corruptError("transition %d: rank %d out of range", t, tr.Rank)
			}
			if conv.Uint32ToInt(uint32(tr.Target)) >= stateCount {
				return corruptError("transition %d: target %d out of range", t, tr.Target)
			}
			if t > lo && p.Transitions[t-1].Rank >= tr.Rank {
				return corruptError("state %d: transitions not sorted by rank", s)
			}
		}
	}

	if err := checkAcyclic(p.Offsets, p.Transitions); err != nil {
		return err
	}

	through, ok := countThrough(p.Offsets, p.Transitions)
	if !ok {
		return corruptError("language size overflows int")
	}
	for t, c := range through {
		if c == 0 {
			return corruptError("transition %d leads to no accepted sequence", t)
		}
	}
	total := 0
	if p.EmptyAccepted {
		total = 1
	}
	lo, hi := stateRange(p.Offsets, n, RootState)
	for t := lo; t < hi; t++ {
		if total = addCount(total, through[t]); total < 0 {
			return corruptError("language size overflows int")
		}
	}
	if total != p.Count {
		return corruptError("count is %d, language has %d sequences", p.Count, total)
	}
	return nil
}

// checkAcyclic runs an iterative depth-first search from the root. States on
// the current path live in a sparse set so that a back edge (a transition
// into a state still on the path) is detected in O(1); finished states are
// recorded in a bit set. Every state must be reachable.
func checkAcyclic(offsets []uint32, transitions []Transition) error {
	stateCount := conv.IntToUint32(len(offsets))
	onPath := sparse.NewSparseSet(stateCount)
	done := bitset.New(uint(stateCount))

	type frame struct {
		state StateID
		next  int
		end   int
	}
	push := func(stack []frame, s StateID) []frame {
		onPath.Insert(uint32(s))
		lo, hi := stateRange(offsets, len(transitions), s)
		return append(stack, frame{state: s, next: lo, end: hi})
	}

	stack := push(nil, RootState)
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next >= f.end {
			onPath.Remove(uint32(f.state))
			done.Set(uint(f.state))
			stack = stack[:len(stack)-1]
			continue
		}

		child := transitions[f.next].Target
		f.next++
		if onPath.Contains(uint32(child)) {
			return corruptError("cycle through state %d", child)
		}
		if !done.Test(uint(child)) {
			stack = push(stack, child)
		}
	}

	if reached := done.Count(); reached != uint(stateCount) {
		return corruptError("%d of %d states unreachable from the root", uint(stateCount)-reached, stateCount)
	}
	return nil
}
