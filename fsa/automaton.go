// Package fsa implements minimal acyclic deterministic finite-state automata
// (MA-FSA) over sequences of arbitrary symbols.
//
// An automaton is built in one pass and is immutable afterwards:
//
//	Extract alphabet -> Insert all sequences into a trie -> Flatten (CSR)
//	-> Minimize (hash-consing of equivalent states)
//
// States are plain integers indexing an offset table; each state's outgoing
// transitions occupy a contiguous, rank-sorted range of one flat transition
// array. Finality is carried by transitions rather than states.
//
// A finished Automaton is safe for concurrent use by any number of readers:
// queries never mutate it and only allocate local traversal state.
package fsa

import (
	"time"

	"go.uber.org/zap"
)

// Automaton is an immutable minimal acyclic automaton accepting a finite set
// of sequences of T.
type Automaton[T any] struct {
	alphabet    *Alphabet[T]
	offsets     []uint32
	transitions []Transition

	// count is the number of accepted sequences, tracked during insertion
	count int

	// emptyAccepted is the root-accepting flag (Config.AllowEmpty only)
	emptyAccepted bool

	threshold int
	stats     BuildStats
}

// Build constructs the minimal automaton accepting exactly the given
// sequences, ordered by cmp.
//
// Returns an error of kind EmptySequence or DuplicateKey for invalid input
// (the first offending sequence in input order is reported), or
// InvalidConfig if config does not validate. No partial automaton is ever
// returned.
func Build[T any](sequences [][]T, cmp func(a, b T) int, config Config) (*Automaton[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if cmp == nil {
		return nil, &Error{Kind: ComparerRequired, Message: ErrComparerRequired.Message}
	}
	start := time.Now()

	alphabet := ExtractAlphabet(sequences, cmp)
	b := NewBuilder(alphabet, config)
	for i, seq := range sequences {
		if err := b.Insert(seq, i); err != nil {
			return nil, err
		}
	}

	offsets, transitions := b.flatten()
	stats := BuildStats{
		Sequences:       b.Len(),
		AlphabetSize:    alphabet.Len(),
		TrieStates:      len(offsets),
		TrieTransitions: len(transitions),
	}

	offsets, transitions, merged := minimize(offsets, transitions)
	stats.States = len(offsets)
	stats.Transitions = len(transitions)
	stats.MergedStates = merged
	stats.Duration = time.Since(start)

	config.logger().Debug("automaton built",
		zap.Int("sequences", stats.Sequences),
		zap.Int("alphabet", stats.AlphabetSize),
		zap.Int("trie_states", stats.TrieStates),
		zap.Int("trie_transitions", stats.TrieTransitions),
		zap.Int("states", stats.States),
		zap.Int("transitions", stats.Transitions),
		zap.Uint64("merged_states", stats.MergedStates),
		zap.Duration("duration", stats.Duration),
	)

	return &Automaton[T]{
		alphabet:      alphabet,
		offsets:       offsets,
		transitions:   transitions,
		count:         b.Len(),
		emptyAccepted: b.emptyAccepted,
		threshold:     config.BinarySearchThreshold,
		stats:         stats,
	}, nil
}

// Len returns the number of accepted sequences (the set's cardinality).
func (a *Automaton[T]) Len() int {
	return a.count
}

// Alphabet returns the automaton's symbol table.
func (a *Automaton[T]) Alphabet() *Alphabet[T] {
	return a.alphabet
}

// StateCount returns the number of states, including the root.
func (a *Automaton[T]) StateCount() int {
	return len(a.offsets)
}

// TransitionCount returns the total number of transitions.
func (a *Automaton[T]) TransitionCount() int {
	return len(a.transitions)
}

// Transitions returns the outgoing transitions of state s, sorted by rank.
// The returned slice must not be modified.
func (a *Automaton[T]) Transitions(s StateID) []Transition {
	lo, hi := a.rangeOf(s)
	return a.transitions[lo:hi:hi]
}

// Stats returns the statistics recorded while building the automaton.
func (a *Automaton[T]) Stats() BuildStats {
	return a.stats
}

func (a *Automaton[T]) rangeOf(s StateID) (int, int) {
	return stateRange(a.offsets, len(a.transitions), s)
}
