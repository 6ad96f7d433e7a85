// Package sparse provides a sparse set of automaton state IDs.
//
// A sparse set supports O(1) insertion, removal and membership testing while
// keeping a dense list of members. The automaton package uses it to track the
// states on the current depth-first path when validating a reloaded
// automaton: a transition into a state that is still on the path is a cycle.
package sparse

import "github.com/coregx/mafsa/internal/conv"

// SparseSet is a set of uint32 values drawn from [0, capacity).
// It maintains both a sparse array (for membership testing) and a dense array
// (for iteration). The sparse array maps values to indices in the dense array.
type SparseSet struct {
	sparse []uint32 // Maps value -> index in dense
	dense  []uint32 // Contains the actual values
}

// NewSparseSet creates a new sparse set with the given capacity.
// The capacity represents the maximum value that can be stored (exclusive).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds a value to the set. Inserting a member is a no-op.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) {
	if s.Contains(value) {
		return
	}
	s.sparse[value] = conv.IntToUint32(len(s.dense))
	s.dense = append(s.dense, value)
}

// Contains returns true if the value is in the set.
// Stale entries in sparse are rejected by the cross-check against dense.
func (s *SparseSet) Contains(value uint32) bool {
	if int64(value) >= int64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return int64(idx) < int64(len(s.dense)) && s.dense[idx] == value
}

// Remove removes a value from the set.
// If the value is not present, this is a no-op.
func (s *SparseSet) Remove(value uint32) {
	if !s.Contains(value) {
		return
	}

	// Move last element into the freed slot (swap and pop)
	idx := s.sparse[value]
	last := s.dense[len(s.dense)-1]
	s.dense[idx] = last
	s.sparse[last] = idx
	s.dense = s.dense[:len(s.dense)-1]
}
