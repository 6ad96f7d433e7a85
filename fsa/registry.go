package fsa

import "slices"

// registry is the hash-consing table of canonical states used while
// minimizing.
//
// It maps a signature key to the canonical states registered under it. A
// state's signature is read from the live transition table through sig, so
// registered states must not have their transitions rewritten afterwards.
// Post-order registration guarantees that: a state is registered only after
// all of its children have been resolved to canonical states.
//
// The registry is owned by a single build and is not safe for concurrent use.
type registry struct {
	buckets map[signatureKey][]StateID
	sig     func(StateID) []Transition

	// Statistics for build reporting
	hits   uint64 // lookups that found an equivalent state (merges)
	misses uint64 // lookups that registered a new canonical state
}

func newRegistry(capacity int, sig func(StateID) []Transition) *registry {
	return &registry{
		buckets: make(map[signatureKey][]StateID, capacity),
		sig:     sig,
	}
}

// register looks up the signature of state.
//
// Returns (existing, true) if an equivalent state is already registered, in
// which case state must be substituted by existing. Otherwise registers state
// as canonical and returns (state, false).
func (r *registry) register(state StateID) (StateID, bool) {
	signature := r.sig(state)
	key := computeSignatureKey(signature)

	for _, candidate := range r.buckets[key] {
		if slices.Equal(r.sig(candidate), signature) {
			r.hits++
			return candidate, true
		}
	}

	r.buckets[key] = append(r.buckets[key], state)
	r.misses++
	return state, false
}

// size returns the number of canonical states registered so far
func (r *registry) size() int {
	return int(r.misses)
}
