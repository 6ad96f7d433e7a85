package fsa

import (
	"iter"
	"math"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/mafsa/internal/conv"
)

// Index augments an automaton with per-transition sequence counts for
// order-statistic queries: the i-th accepted sequence in lexicographic order
// and the rank of a given sequence, both in O(length x log(out-degree))
// without enumerating.
//
// The number of sequences reachable through a transition depends only on its
// target state's forward language, which is the same whichever path reaches
// the state. That path independence is what makes caching one count per
// transition valid in a DAG with shared suffixes.
//
// An Index is immutable and safe for concurrent use.
type Index[T any] struct {
	a *Automaton[T]

	// before[t] is the number of sequences reachable through the transitions
	// preceding t in its state's range
	before []int
}

// NewIndex computes the per-transition counts of a in one post-order pass.
func NewIndex[T any](a *Automaton[T]) *Index[T] {
	// Built and validated automata never overflow: their counts are
	// bounded by Len
	through, _ := countThrough(a.offsets, a.transitions)

	before := make([]int, len(a.transitions))
	for s := range a.offsets {
		lo, hi := a.rangeOf(StateID(conv.IntToUint32(s)))
		running := 0
		for t := lo; t < hi; t++ {
			before[t] = running
			running += through[t]
		}
	}

	return &Index[T]{a: a, before: before}
}

// countThrough returns, for every transition, the number of accepted
// sequences completed by it or by any path through its target state.
// It reports false if a count does not fit in an int.
//
// States are resolved children-first with an explicit stack; the graph must
// be acyclic.
func countThrough(offsets []uint32, transitions []Transition) ([]int, bool) {
	through := make([]int, len(transitions))
	if len(offsets) == 0 {
		return through, true
	}
	total := make([]int, len(offsets))
	done := bitset.New(conv.IntToUint(len(offsets)))

	type frame struct {
		state StateID
		next  int
		end   int
	}
	push := func(stack []frame, s StateID) []frame {
		lo, hi := stateRange(offsets, len(transitions), s)
		return append(stack, frame{state: s, next: lo, end: hi})
	}

	stack := push(nil, RootState)
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next < f.end {
			child := transitions[f.next].Target
			if !done.Test(uint(child)) {
				stack = push(stack, child)
				continue
			}
			n := total[child]
			if transitions[f.next].Final {
				if n = addCount(n, 1); n < 0 {
					return nil, false
				}
			}
			through[f.next] = n
			if total[f.state] = addCount(total[f.state], n); total[f.state] < 0 {
				return nil, false
			}
			f.next++
			continue
		}
		done.Set(uint(f.state))
		stack = stack[:len(stack)-1]
	}

	return through, true
}

// addCount adds two non-negative counts, returning -1 on overflow.
func addCount(a, b int) int {
	if a > math.MaxInt-b {
		return -1
	}
	return a + b
}

// Len returns the number of indexed sequences.
func (x *Index[T]) Len() int {
	return x.a.count
}

// Automaton returns the indexed automaton.
func (x *Index[T]) Automaton() *Automaton[T] {
	return x.a
}

// At returns the i-th accepted sequence (0-based) in lexicographic order.
//
// Returns an IndexOutOfRange error reporting i and the current count if i is
// not in [0, Len()). The index stays valid after an error.
func (x *Index[T]) At(i int) ([]T, error) {
	if i < 0 || i >= x.a.count {
		return nil, indexOutOfRangeError(i, x.a.count)
	}
	if x.a.emptyAccepted {
		if i == 0 {
			return []T{}, nil
		}
		i--
	}
	fromStack, _ := x.descend(i, false)
	return x.a.spell(fromStack), nil
}

// descend walks from the root to the sequence with the given rank among the
// non-empty sequences. It returns the cursor trail of that sequence and, if
// withBounds is set, the matching range ends, ready for resume.
func (x *Index[T]) descend(budget int, withBounds bool) (fromStack, toStack []int) {
	a := x.a
	fromStack = make([]int, 0, 16)
	if withBounds {
		toStack = make([]int, 0, 16)
	}

	state := RootState
	for {
		lo, hi := a.rangeOf(state)

		// Last transition whose cumulative start does not exceed budget
		j := lo + sort.Search(hi-lo, func(k int) bool {
			return x.before[lo+k] > budget
		}) - 1

		budget -= x.before[j]
		fromStack = append(fromStack, j+1)
		if withBounds {
			toStack = append(toStack, hi)
		}

		t := a.transitions[j]
		if t.Final {
			if budget == 0 {
				return fromStack, toStack
			}
			budget--
		}
		state = t.Target
	}
}

// IndexOf returns the position of seq in lexicographic order, or (-1, false)
// if seq is not accepted. It is the inverse of At.
func (x *Index[T]) IndexOf(seq []T) (int, bool) {
	a := x.a
	rank := 0
	if a.emptyAccepted {
		if len(seq) == 0 {
			return 0, true
		}
		rank = 1
	}
	if len(seq) == 0 {
		return -1, false
	}

	state := RootState
	for k, sym := range seq {
		pos, ok := a.step(state, sym)
		if !ok {
			return -1, false
		}
		rank += x.before[pos]

		t := a.transitions[pos]
		if k == len(seq)-1 {
			if !t.Final {
				return -1, false
			}
			return rank, true
		}
		if t.Final {
			// The shorter sequence ending here sorts first
			rank++
		}
		state = t.Target
	}
	return -1, false
}

// Range returns the accepted sequences with positions in [from, to), in
// order. Bounds are clamped to [0, Len()); an empty range yields nothing.
//
// The first element is located directly, as in At; the rest are produced by
// continuing the depth-first enumeration from there.
func (x *Index[T]) Range(from, to int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		a := x.a
		lo, hi := max(from, 0), min(to, a.count)
		if lo >= hi {
			return
		}

		remaining := hi - lo
		emit := func(seq []T) bool {
			if !yield(seq) {
				return false
			}
			remaining--
			return remaining > 0
		}

		budget := lo
		if a.emptyAccepted {
			if budget == 0 {
				if emit([]T{}) {
					a.walk(RootState, nil, emit)
				}
				return
			}
			budget--
		}

		fromStack, toStack := x.descend(budget, true)
		if !emit(a.spell(fromStack)) {
			return
		}
		last := a.transitions[fromStack[len(fromStack)-1]-1]
		if nlo, nhi := a.rangeOf(last.Target); nlo < nhi {
			fromStack = append(fromStack, nlo)
			toStack = append(toStack, nhi)
		}
		a.resume(fromStack, toStack, emit)
	}
}
