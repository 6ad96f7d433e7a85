package fsa

import (
	"fmt"
	"time"
)

// BuildStats describes the automaton before and after minimization.
//
// TrieStates - States is the number of states collapsed by minimization.
// For reloaded automata only the post-minimization fields are set.
type BuildStats struct {
	// Sequences is the number of accepted sequences
	Sequences int

	// AlphabetSize is the number of distinct symbols
	AlphabetSize int

	// TrieStates and TrieTransitions describe the unminimized trie
	TrieStates      int
	TrieTransitions int

	// States and Transitions describe the minimal automaton
	States      int
	Transitions int

	// MergedStates counts registry hits, i.e. states substituted by an
	// equivalent canonical state
	MergedStates uint64

	// Duration is the wall time of the whole build
	Duration time.Duration
}

// CompressionRatio returns States / TrieStates, or 1 if there is no trie.
func (s BuildStats) CompressionRatio() float64 {
	if s.TrieStates == 0 {
		return 1
	}
	return float64(s.States) / float64(s.TrieStates)
}

// String returns a one-line summary
func (s BuildStats) String() string {
	return fmt.Sprintf("sequences=%d alphabet=%d trie=%d/%d minimal=%d/%d merged=%d took=%v",
		s.Sequences, s.AlphabetSize, s.TrieStates, s.TrieTransitions,
		s.States, s.Transitions, s.MergedStates, s.Duration)
}
