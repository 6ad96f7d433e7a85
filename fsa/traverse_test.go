package fsa

import (
	"cmp"
	"testing"
)

func TestContains(t *testing.T) {
	a := mustBuild(t, "abc", "aa", "ac", "ab")

	tests := []struct {
		input string
		want  bool
	}{
		{"aa", true},
		{"ab", true},
		{"abc", true},
		{"ac", true},
		{"a", false},    // prefix, not final
		{"abcd", false}, // runs off a leaf
		{"ad", false},   // no transition
		{"x", false},    // symbol not in alphabet
		{"", false},     // empty sequence not accepted by default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := a.Contains([]rune(tt.input)); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAllLexicographicOrder(t *testing.T) {
	a := mustBuild(t, "abc", "aa", "ac", "ab")
	want := []string{"aa", "ab", "abc", "ac"}
	if got := collect(a.All()); !equalStrings(got, want) {
		t.Errorf("All() = %q, want %q", got, want)
	}
	if a.Len() != 4 {
		t.Errorf("Len() = %d, want 4", a.Len())
	}
}

func TestAllCustomComparator(t *testing.T) {
	reverse := func(x, y rune) int { return cmp.Compare(y, x) }
	a, err := Build(runeSeqs("ab", "b", "ba", "a"), reverse, DefaultConfig())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	// Shorter sequences still precede their extensions
	want := []string{"b", "ba", "a", "ab"}
	if got := collect(a.All()); !equalStrings(got, want) {
		t.Errorf("All() = %q, want %q", got, want)
	}
}

func TestAllRestartable(t *testing.T) {
	a := mustBuild(t, "one", "two", "three")
	seq := a.All()
	first := collect(seq)
	second := collect(seq)
	if !equalStrings(first, second) {
		t.Errorf("second pass = %q, first pass = %q", second, first)
	}
}

func TestAllEarlyBreak(t *testing.T) {
	a := mustBuild(t, "a", "b", "c", "d")
	var got []string
	for s := range a.All() {
		got = append(got, string(s))
		if len(got) == 2 {
			break
		}
	}
	if !equalStrings(got, []string{"a", "b"}) {
		t.Errorf("got %q, want [a b]", got)
	}
}

func TestAllYieldsFreshSlices(t *testing.T) {
	a := mustBuild(t, "ab", "ac")
	var seqs [][]rune
	for s := range a.All() {
		seqs = append(seqs, s)
	}
	seqs[0][0] = 'z'
	if string(seqs[1]) != "ac" {
		t.Errorf("yielded slices share storage: %q", string(seqs[1]))
	}
	if !a.Contains([]rune("ab")) {
		t.Error("mutating a yielded slice changed the automaton")
	}
}

func TestWithPrefix(t *testing.T) {
	a := mustBuild(t, "abc", "aa", "ac", "ab", "b")

	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"aa", "ab", "abc", "ac", "b"}},
		{"a", []string{"aa", "ab", "abc", "ac"}},
		{"ab", []string{"ab", "abc"}},
		{"abc", []string{"abc"}},
		{"abcd", nil},
		{"b", []string{"b"}},
		{"z", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := collect(a.WithPrefix([]rune(tt.prefix))); !equalStrings(got, tt.want) {
				t.Errorf("WithPrefix(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestWithPrefixDoesNotRetainPrefix(t *testing.T) {
	a := mustBuild(t, "abc", "abd")
	prefix := []rune("ab")
	got := collect(a.WithPrefix(prefix))
	prefix[0] = 'x'
	if !equalStrings(got, []string{"abc", "abd"}) {
		t.Errorf("WithPrefix = %q", got)
	}
}

func TestLongSequence(t *testing.T) {
	// Deep automata must not depend on recursion depth
	long := make([]rune, 100_000)
	for i := range long {
		long[i] = rune('a' + i%3)
	}
	a, err := Build([][]rune{long, long[:50_000]}, cmp.Compare[rune], DefaultConfig())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if !a.Contains(long) || !a.Contains(long[:50_000]) {
		t.Error("long sequences not contained")
	}
	n := 0
	for s := range a.All() {
		n++
		if n == 1 && len(s) != 50_000 {
			t.Errorf("first element has length %d, want 50000", len(s))
		}
	}
	if n != 2 {
		t.Errorf("enumerated %d sequences, want 2", n)
	}
}

func TestLongestPrefix(t *testing.T) {
	a := mustBuild(t, "a", "ab", "abcd", "he", "hers")

	tests := []struct {
		input string
		want  int
		found bool
	}{
		{"ab", 2, true},
		{"abc", 2, true}, // "abc" is not accepted, "ab" is
		{"abcdef", 4, true},
		{"axyz", 1, true},
		{"her", 2, true},
		{"hers!", 4, true},
		{"b", 0, false},
		{"h", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, found := a.LongestPrefix([]rune(tt.input))
			if got != tt.want || found != tt.found {
				t.Errorf("LongestPrefix(%q) = (%d, %v), want (%d, %v)", tt.input, got, found, tt.want, tt.found)
			}
		})
	}

	withEmpty := mustBuildWithConfig(t, DefaultConfig().WithAllowEmpty(true), "", "xy")
	if got, found := withEmpty.LongestPrefix([]rune("xz")); got != 0 || !found {
		t.Errorf("LongestPrefix with empty element = (%d, %v), want (0, true)", got, found)
	}
}
