package fsa

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/mafsa/internal/conv"
)

// minimizer collapses equivalent states of a flattened trie.
//
// Algorithm (post-order register/merge):
//  1. Visit a state's children first.
//  2. When a child turns out to be equivalent to an already registered
//     state, rewrite every transition currently targeting the child and fold
//     the child's incoming list into the substitute's.
//  3. Register the state under its (rewritten) transition list, or report
//     the registered state it must be substituted by.
//
// The traversal uses an explicit stack, so depth is bounded by heap memory
// rather than the goroutine stack even for very long sequences.
type minimizer struct {
	offsets     []uint32
	transitions []Transition

	// incoming is the merge-tracking index: for each state, the positions of
	// the transitions currently targeting it
	incoming [][]uint32

	// substitute[s] is the canonical state replacing s, or InvalidState if s
	// is itself canonical. Only meaningful once s has been registered.
	substitute []StateID

	visited  *bitset.BitSet
	registry *registry
}

// minimizeFrame is one entry of the explicit post-order stack
type minimizeFrame struct {
	state StateID
	next  int // position of the next transition to process
	end   int
}

// minimize reduces the trie in (offsets, transitions) to the minimal
// automaton for the same language and renumbers the surviving states densely
// in depth-first discovery order, so the root stays state 0.
//
// The input transitions are rewritten in place. Returns the compacted arrays
// and the number of merged states.
func minimize(offsets []uint32, transitions []Transition) ([]uint32, []Transition, uint64) {
	m := &minimizer{
		offsets:     offsets,
		transitions: transitions,
		incoming:    make([][]uint32, len(offsets)),
		substitute:  make([]StateID, len(offsets)),
		visited:     bitset.New(conv.IntToUint(len(offsets))),
	}
	m.registry = newRegistry(len(offsets), m.signature)

	for i, t := range transitions {
		m.incoming[t.Target] = append(m.incoming[t.Target], conv.IntToUint32(i))
	}

	root := m.run(RootState)
	newOffsets, newTransitions := m.compact(root)
	return newOffsets, newTransitions, m.registry.hits
}

// run performs the post-order pass and returns the canonical root.
func (m *minimizer) run(root StateID) StateID {
	m.visited.Set(uint(root))
	stack := []minimizeFrame{m.frame(root)}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if f.next < f.end {
			child := m.transitions[f.next].Target
			if !m.visited.Test(uint(child)) {
				m.visited.Set(uint(child))
				stack = append(stack, m.frame(child))
				continue
			}

			// Child fully processed: apply its substitution, if any
			if sub := m.substitute[child]; sub != InvalidState {
				m.merge(child, sub)
			}
			f.next++
			continue
		}

		// All children resolved: register this state
		if existing, found := m.registry.register(f.state); found {
			m.substitute[f.state] = existing
		} else {
			m.substitute[f.state] = InvalidState
		}
		stack = stack[:len(stack)-1]
	}

	// A non-empty root can never be equivalent to one of its descendants
	// (its language would have to contain longer copies of its longest
	// sequence), but keep the mapping total.
	if sub := m.substitute[root]; sub != InvalidState {
		return sub
	}
	return root
}

func (m *minimizer) frame(s StateID) minimizeFrame {
	lo, hi := m.rangeOf(s)
	return minimizeFrame{state: s, next: lo, end: hi}
}

func (m *minimizer) rangeOf(s StateID) (int, int) {
	return stateRange(m.offsets, len(m.transitions), s)
}

// signature returns the live transition list of s.
func (m *minimizer) signature(s StateID) []Transition {
	lo, hi := m.rangeOf(s)
	return m.transitions[lo:hi]
}

// merge redirects every transition targeting child to sub.
func (m *minimizer) merge(child, sub StateID) {
	for _, pos := range m.incoming[child] {
		m.transitions[pos].Target = sub
	}
	m.incoming[sub] = append(m.incoming[sub], m.incoming[child]...)
	m.incoming[child] = nil
}

// compact renumbers the canonical states reachable from root in depth-first
// discovery order and rebuilds the CSR arrays over them only.
func (m *minimizer) compact(root StateID) ([]uint32, []Transition) {
	renumber := make([]StateID, len(m.offsets))
	for i := range renumber {
		renumber[i] = InvalidState
	}

	order := make([]StateID, 0, m.registry.size())
	renumber[root] = 0
	order = append(order, root)

	stack := []minimizeFrame{m.frame(root)}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next >= f.end {
			stack = stack[:len(stack)-1]
			continue
		}
		child := m.transitions[f.next].Target
		f.next++
		if renumber[child] == InvalidState {
			renumber[child] = StateID(conv.IntToUint32(len(order)))
			order = append(order, child)
			stack = append(stack, m.frame(child))
		}
	}

	total := 0
	for _, s := range order {
		lo, hi := m.rangeOf(s)
		total += hi - lo
	}

	offsets := make([]uint32, len(order))
	transitions := make([]Transition, 0, total)
	for i, old := range order {
		offsets[i] = conv.IntToUint32(len(transitions))
		for _, t := range m.signature(old) {
			transitions = append(transitions, Transition{
				Rank:   t.Rank,
				Target: renumber[t.Target],
				Final:  t.Final,
			})
		}
	}

	return offsets, transitions
}

// stateRange returns the [lo, hi) transition range of state s in a CSR
// layout with n transitions.
func stateRange(offsets []uint32, n int, s StateID) (int, int) {
	lo := conv.Uint32ToInt(offsets[s])
	if int(s)+1 < len(offsets) {
		return lo, conv.Uint32ToInt(offsets[s+1])
	}
	return lo, n
}
