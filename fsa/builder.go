package fsa

import (
	"fmt"
	"slices"
	"strings"

	"github.com/coregx/mafsa/internal/conv"
)

// Builder inserts sequences into a trie whose states keep their outgoing
// transitions sorted by symbol rank.
//
// The trie lives in a growable list-of-lists (one transition list per state)
// only while building; flatten converts it into the fixed CSR layout the
// minimizer and the query engine work on.
//
// Example after inserting "ad", "az", "be":
//
//	State0 --a--> State1 --d--> State2 (final)
//	   |            |
//	   |            z--> State3 (final)
//	   b--> State4 --e--> State5 (final)
//
// A Builder is owned by a single construction and is not safe for
// concurrent use.
type Builder[T any] struct {
	alphabet      *Alphabet[T]
	states        [][]Transition
	threshold     int
	allowEmpty    bool
	emptyAccepted bool
	count         int
}

// NewBuilder creates a builder for sequences over the given alphabet.
// Every symbol later passed to Insert must belong to the alphabet.
func NewBuilder[T any](alphabet *Alphabet[T], config Config) *Builder[T] {
	// Capacity of alphabet.Len() avoids the first few resizes
	states := make([][]Transition, 1, max(alphabet.Len(), 1))
	return &Builder[T]{
		alphabet:   alphabet,
		states:     states,
		threshold:  config.BinarySearchThreshold,
		allowEmpty: config.AllowEmpty,
	}
}

// Insert adds seq to the trie. position is the sequence's offset in the
// caller's input and is only used for error reporting.
//
// Returns an ErrEmptySequence-kind error for a zero-length sequence (unless
// empty sequences are allowed) and an ErrDuplicateKey-kind error if seq was
// inserted before. Panics if a symbol is missing from the alphabet.
func (b *Builder[T]) Insert(seq []T, position int) error {
	if len(seq) == 0 {
		if !b.allowEmpty {
			return emptySequenceError(position)
		}
		if b.emptyAccepted {
			return duplicateKeyError("", position)
		}
		b.emptyAccepted = true
		b.count++
		return nil
	}

	state := RootState
	var (
		list  []Transition
		index int
	)
	for _, sym := range seq {
		rank, ok := b.alphabet.Rank(sym)
		if !ok {
			panic(fmt.Sprintf("symbol %v is not in the alphabet", sym))
		}

		list = b.states[state]
		index = searchRank(list, rank, b.threshold)
		if index >= 0 {
			// Shared prefix: follow the existing transition
			state = list[index].Target
			continue
		}

		// Splice a new transition in sorted position to a fresh state.
		// Insertion in the middle of the slice beats map/linked-list
		// representations for the small out-degrees seen in practice.
		index = ^index
		next := StateID(conv.IntToUint32(len(b.states)))
		b.states = append(b.states, nil)
		list = slices.Insert(list, index, Transition{Rank: rank, Target: next})
		b.states[state] = list
		state = next
	}

	if list[index].Final {
		return duplicateKeyError(renderKey(seq), position)
	}
	list[index].Final = true
	b.count++
	return nil
}

// Len returns the number of sequences inserted so far.
func (b *Builder[T]) Len() int {
	return b.count
}

// StateCount returns the number of trie states, including the root.
func (b *Builder[T]) StateCount() int {
	return len(b.states)
}

// TransitionCount returns the number of trie transitions.
func (b *Builder[T]) TransitionCount() int {
	n := 0
	for _, list := range b.states {
		n += len(list)
	}
	return n
}

// flatten converts the per-state transition lists into the CSR layout:
// offsets[s] is where state s's transitions begin in the flat array.
// Each state's internal order is preserved.
func (b *Builder[T]) flatten() (offsets []uint32, transitions []Transition) {
	offsets = make([]uint32, len(b.states))
	transitions = make([]Transition, 0, b.TransitionCount())
	for s, list := range b.states {
		offsets[s] = conv.IntToUint32(len(transitions))
		transitions = append(transitions, list...)
	}
	return offsets, transitions
}

// renderKey renders a sequence as text for error messages.
// Runes and bytes are written as characters, strings verbatim, and
// everything else through fmt.
func renderKey[T any](seq []T) string {
	var sb strings.Builder
	for _, sym := range seq {
		switch v := any(sym).(type) {
		case rune:
			sb.WriteRune(v)
		case byte:
			sb.WriteByte(v)
		case string:
			sb.WriteString(v)
		case fmt.Stringer:
			sb.WriteString(v.String())
		default:
			fmt.Fprint(&sb, v)
		}
	}
	return sb.String()
}
