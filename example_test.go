package mafsa_test

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/coregx/mafsa"
)

// ExampleCreate demonstrates building a set and testing membership.
func ExampleCreate() {
	set, err := mafsa.Create(mafsa.Runes("nation", "ration"), cmp.Compare[rune])
	if err != nil {
		panic(err)
	}

	fmt.Println(set.Contains([]rune("ration")), set.Contains([]rune("ratio")))
	// Output: true false
}

// ExampleCreateOrdered demonstrates a set over naturally ordered symbols.
func ExampleCreateOrdered() {
	set, err := mafsa.CreateOrdered([][]int{{3, 1}, {1, 2}, {1}})
	if err != nil {
		panic(err)
	}

	for seq := range set.All() {
		fmt.Println(seq)
	}
	// Output:
	// [1]
	// [1 2]
	// [3 1]
}

// ExampleMustCreate demonstrates panic-on-error construction.
func ExampleMustCreate() {
	set := mafsa.MustCreate(mafsa.Runes("tap", "taps", "top", "tops"), cmp.Compare[rune])
	fmt.Println(set.Len(), set.Stats().States)
	// Output: 4 5
}

// ExampleSet_All demonstrates lexicographic enumeration.
func ExampleSet_All() {
	set := mafsa.MustCreate(mafsa.Runes("abc", "aa", "ac", "ab"), cmp.Compare[rune])
	for word := range set.All() {
		fmt.Println(string(word))
	}
	// Output:
	// aa
	// ab
	// abc
	// ac
}

// ExampleSet_WithPrefix demonstrates prefix enumeration.
func ExampleSet_WithPrefix() {
	set := mafsa.MustCreate(mafsa.Runes("car", "card", "care", "cat", "dog"), cmp.Compare[rune])
	for word := range set.WithPrefix([]rune("car")) {
		fmt.Println(string(word))
	}
	// Output:
	// car
	// card
	// care
}

// ExampleIndexedSet_At demonstrates order-statistic lookups.
func ExampleIndexedSet_At() {
	set, err := mafsa.CreateIndexed(mafsa.Runes("cherry", "apple", "banana"), cmp.Compare[rune])
	if err != nil {
		panic(err)
	}

	word, _ := set.At(1)
	pos, _ := set.IndexOf([]rune("cherry"))
	fmt.Println(string(word), pos)

	_, err = set.At(3)
	fmt.Println(err)
	// Output:
	// banana 2
	// index 3 out of range [0, 3)
}

// ExampleIndexedSet_Range demonstrates paging through a set.
func ExampleIndexedSet_Range() {
	set, err := mafsa.CreateIndexed(mafsa.Runes("a", "b", "c", "d", "e"), cmp.Compare[rune])
	if err != nil {
		panic(err)
	}

	for word := range set.Range(1, 4) {
		fmt.Print(string(word), " ")
	}
	fmt.Println()
	// Output: b c d
}

// ExampleCreate_duplicate demonstrates duplicate detection.
func ExampleCreate_duplicate() {
	_, err := mafsa.Create(mafsa.Runes("ab", "a", "ab"), cmp.Compare[rune])
	fmt.Println(errors.Is(err, mafsa.ErrDuplicateKey))
	fmt.Println(err)
	// Output:
	// true
	// duplicate key: "ab"
}

// ExampleFromParts demonstrates reloading a set from its flat arrays.
func ExampleFromParts() {
	set := mafsa.MustCreate(mafsa.Runes("one", "two", "three"), cmp.Compare[rune])

	parts := set.Parts()
	reloaded, err := mafsa.FromParts(parts, cmp.Compare[rune])
	if err != nil {
		panic(err)
	}
	fmt.Println(reloaded.Len(), reloaded.Contains([]rune("three")))

	_, err = mafsa.FromParts(parts, nil)
	fmt.Println(errors.Is(err, mafsa.ErrComparerRequired))
	// Output:
	// 3 true
	// true
}
