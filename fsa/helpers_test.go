package fsa

import (
	"cmp"
	"iter"
	"testing"
)

// runeSeqs converts words to rune sequences
func runeSeqs(words ...string) [][]rune {
	seqs := make([][]rune, len(words))
	for i, w := range words {
		seqs[i] = []rune(w)
	}
	return seqs
}

// mustBuild builds an automaton over words with the default config
func mustBuild(t testing.TB, words ...string) *Automaton[rune] {
	t.Helper()
	return mustBuildWithConfig(t, DefaultConfig(), words...)
}

func mustBuildWithConfig(t testing.TB, config Config, words ...string) *Automaton[rune] {
	t.Helper()
	a, err := Build(runeSeqs(words...), cmp.Compare[rune], config)
	if err != nil {
		t.Fatalf("Build(%q) error: %v", words, err)
	}
	return a
}

// collect drains an enumeration into strings
func collect(seq iter.Seq[[]rune]) []string {
	var out []string
	for s := range seq {
		out = append(out, string(s))
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
