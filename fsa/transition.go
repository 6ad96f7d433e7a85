package fsa

import (
	"fmt"
	"hash/fnv"
)

// StateID identifies an automaton state.
// A state has no attributes of its own: it is an index into the offset table
// that delimits its outgoing transitions.
type StateID uint32

// Special state constants
const (
	// RootState is the start state, corresponding to the empty prefix.
	RootState StateID = 0

	// InvalidState marks an absent state (e.g. "no substitute" while minimizing)
	InvalidState StateID = 0xFFFFFFFF
)

// Transition is a labelled edge of the automaton.
//
// Final marks that the path from the root through this transition spells an
// accepted sequence; finality belongs to the edge, not to the target state.
// Within one state, transitions are strictly sorted by Rank.
type Transition struct {
	// Rank is the alphabet rank of the transition's symbol
	Rank uint32

	// Target is the state reached by taking the transition
	Target StateID

	// Final is set when taking the transition completes an accepted sequence
	Final bool
}

// String returns a human-readable representation of the transition
func (t Transition) String() string {
	if t.Final {
		return fmt.Sprintf("%d->%d(final)", t.Rank, t.Target)
	}
	return fmt.Sprintf("%d->%d", t.Rank, t.Target)
}

// signatureKey is a hash of a state's outgoing transitions.
//
// Two states are equivalent iff their transition lists are identical in
// order by (Rank, Target, Final). Equal signatures produce equal keys; the
// registry resolves collisions by comparing the lists themselves.
type signatureKey uint64

// computeSignatureKey hashes a transition list using FNV-1a.
//
// Transitions are already in canonical (rank) order, so no sorting is needed
// before hashing.
func computeSignatureKey(transitions []Transition) signatureKey {
	if len(transitions) == 0 {
		return signatureKey(0)
	}

	h := fnv.New64a()
	var buf [9]byte
	for _, t := range transitions {
		buf[0] = byte(t.Rank)
		buf[1] = byte(t.Rank >> 8)
		buf[2] = byte(t.Rank >> 16)
		buf[3] = byte(t.Rank >> 24)
		buf[4] = byte(t.Target)
		buf[5] = byte(t.Target >> 8)
		buf[6] = byte(t.Target >> 16)
		buf[7] = byte(t.Target >> 24)
		buf[8] = 0
		if t.Final {
			buf[8] = 1
		}
		// hash.Hash.Write never returns an error per documentation
		_, _ = h.Write(buf[:])
	}

	return signatureKey(h.Sum64())
}

// searchRank finds rank among transitions sorted by Rank.
//
// It returns the matching index, or the bitwise complement of the index where
// a transition with that rank would be inserted. Short lists are scanned
// linearly; lists of at least threshold entries are binary searched.
func searchRank(transitions []Transition, rank uint32, threshold int) int {
	lower, upper := 0, len(transitions)
	if upper-lower >= threshold {
		upper--
		for lower <= upper {
			middle := int(uint(lower+upper) >> 1)
			switch r := transitions[middle].Rank; {
			case r == rank:
				return middle
			case r > rank:
				upper = middle - 1
			default:
				lower = middle + 1
			}
		}
		return ^lower
	}

	for i, t := range transitions {
		if t.Rank == rank {
			return i
		}
		if t.Rank > rank {
			return ^i
		}
	}
	return ^upper
}
