package main

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/coregx/mafsa"
)

var errNoWords = errors.New("no word list: set --words or MAFSA_WORDS")

// readLines returns the lines of the file at path with line endings removed.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// comparator returns the rune order for locale: code point order when locale
// is empty, otherwise the locale's collation with code point order breaking
// ties between collation-equal runes.
func comparator(locale string) (func(a, b rune) int, error) {
	if locale == "" {
		return cmp.Compare[rune], nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	// A Collator reuses internal buffers and is not safe for concurrent use
	var mu sync.Mutex
	col := collate.New(tag)
	return func(a, b rune) int {
		mu.Lock()
		c := col.CompareString(string(a), string(b))
		mu.Unlock()
		if c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	}, nil
}

// loadSet reads the word list at path and builds an indexed set from it.
func loadSet(path, locale string, allowEmpty bool, log *zap.Logger) (*mafsa.IndexedSet[rune], error) {
	if path == "" {
		return nil, errNoWords
	}
	order, err := comparator(locale)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	lines, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	config := mafsa.DefaultConfig().
		WithAllowEmpty(allowEmpty).
		WithLogger(log)
	set, err := mafsa.CreateIndexedWithConfig(mafsa.Runes(lines...), order, config)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", path, err)
	}

	stats := set.Stats()
	log.Info("word list loaded",
		zap.String("path", path),
		zap.String("locale", locale),
		zap.Int("words", set.Len()),
		zap.Int("states", stats.States),
		zap.Int("transitions", stats.Transitions),
		zap.Duration("took", time.Since(start)),
	)
	return set, nil
}
