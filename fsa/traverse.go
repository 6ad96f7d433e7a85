package fsa

import "iter"

// step follows the transition labelled sym out of state s.
// Returns the transition's position in the flat array.
func (a *Automaton[T]) step(s StateID, sym T) (int, bool) {
	rank, ok := a.alphabet.Rank(sym)
	if !ok {
		return 0, false
	}
	lo, hi := a.rangeOf(s)
	i := searchRank(a.transitions[lo:hi], rank, a.threshold)
	if i < 0 {
		return 0, false
	}
	return lo + i, true
}

// follow walks seq from the root.
//
// On success it returns the state reached, whether the last transition taken
// was final (for an empty seq: whether the empty sequence is accepted), and
// appends to cursors the position following each matched transition, which
// is the resume point enumeration expects.
func (a *Automaton[T]) follow(seq []T, cursors []int) (StateID, bool, []int, bool) {
	state := RootState
	final := a.emptyAccepted
	for _, sym := range seq {
		pos, ok := a.step(state, sym)
		if !ok {
			return InvalidState, false, cursors, false
		}
		if cursors != nil {
			cursors = append(cursors, pos+1)
		}
		t := a.transitions[pos]
		state, final = t.Target, t.Final
	}
	return state, final, cursors, true
}

// Contains reports whether seq is accepted.
//
// It returns false as soon as a symbol has no transition; otherwise true iff
// the whole sequence was consumed and the last transition taken is final.
func (a *Automaton[T]) Contains(seq []T) bool {
	_, final, _, ok := a.follow(seq, nil)
	return ok && final
}

// LongestPrefix returns the length of the longest accepted sequence that is
// a prefix of seq, or (0, false) if no prefix of seq is accepted.
//
// The walk stops at the first symbol without a transition, so the cost is
// bounded by the longest accepted sequence, not by len(seq).
func (a *Automaton[T]) LongestPrefix(seq []T) (int, bool) {
	best, found := 0, a.emptyAccepted
	state := RootState
	for i, sym := range seq {
		pos, ok := a.step(state, sym)
		if !ok {
			break
		}
		t := a.transitions[pos]
		if t.Final {
			best, found = i+1, true
		}
		state = t.Target
	}
	return best, found
}

// All returns every accepted sequence in lexicographic order induced by the
// alphabet ranking.
//
// The iterator is lazy and restartable; each yielded slice is freshly
// allocated and owned by the caller. Abandoning the loop early is the only
// form of cancellation and leaves nothing to clean up.
func (a *Automaton[T]) All() iter.Seq[[]T] {
	return a.WithPrefix(nil)
}

// WithPrefix returns, in lexicographic order, every accepted sequence that
// starts with prefix, including prefix itself when it is accepted. The
// sequence is empty if no element starts with prefix.
func (a *Automaton[T]) WithPrefix(prefix []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		cursors := make([]int, 0, len(prefix)+16)
		state, final, cursors, ok := a.follow(prefix, cursors)
		if !ok {
			return
		}
		if final && !yield(a.spell(cursors)) {
			return
		}
		a.walk(state, cursors, yield)
	}
}

// walk enumerates the language below state from.
//
// It keeps two parallel explicit stacks instead of recursing: fromStack holds,
// per depth, the position following the transition currently being explored
// (so fromStack[i]-1 spells symbol i), and toStack the exclusive end of that
// depth's transition range. fromStack may be pre-seeded with a prefix; those
// entries have no toStack counterpart and are never popped.
//
// Returns false if yield asked to stop.
func (a *Automaton[T]) walk(from StateID, fromStack []int, yield func([]T) bool) bool {
	lo, hi := a.rangeOf(from)
	if lo == hi {
		return true
	}
	toStack := make([]int, 0, 16)
	fromStack = append(fromStack, lo)
	toStack = append(toStack, hi)
	return a.resume(fromStack, toStack, yield)
}

// resume continues a depth-first enumeration from the given stacks.
func (a *Automaton[T]) resume(fromStack, toStack []int, yield func([]T) bool) bool {
	for len(toStack) > 0 {
		top := len(fromStack) - 1
		lower, upper := fromStack[top], toStack[len(toStack)-1]
		if lower >= upper {
			// Range exhausted: back up one level
			fromStack = fromStack[:top]
			toStack = toStack[:len(toStack)-1]
			continue
		}

		fromStack[top] = lower + 1
		t := a.transitions[lower]
		if t.Final && !yield(a.spell(fromStack)) {
			return false
		}

		if nlo, nhi := a.rangeOf(t.Target); nlo < nhi {
			fromStack = append(fromStack, nlo)
			toStack = append(toStack, nhi)
		}
	}
	return true
}

// spell reconstructs the sequence encoded by a cursor trail.
func (a *Automaton[T]) spell(cursors []int) []T {
	out := make([]T, len(cursors))
	for i, c := range cursors {
		out[i] = a.alphabet.symbols[a.transitions[c-1].Rank]
	}
	return out
}
