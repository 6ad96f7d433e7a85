package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/mafsa/scan"
)

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print automaton size statistics",
		Args:  cobra.NoArgs,
		RunE: a.withSet(func(cmd *cobra.Command, _ []string) error {
			s := a.set.Stats()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "words\t%d\n", a.set.Len())
			fmt.Fprintf(w, "alphabet\t%d\n", s.AlphabetSize)
			fmt.Fprintf(w, "trie states\t%d\n", s.TrieStates)
			fmt.Fprintf(w, "trie transitions\t%d\n", s.TrieTransitions)
			fmt.Fprintf(w, "states\t%d\n", s.States)
			fmt.Fprintf(w, "transitions\t%d\n", s.Transitions)
			fmt.Fprintf(w, "merged states\t%d\n", s.MergedStates)
			fmt.Fprintf(w, "compression\t%.3f\n", s.CompressionRatio())
			return nil
		}),
	}
}

func (a *app) containsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contains <word>...",
		Short: "Report whether each word is in the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withSet(func(cmd *cobra.Command, args []string) error {
			for _, w := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%v\n", w, a.set.Contains([]rune(w)))
			}
			return nil
		}),
	}
}

func (a *app) prefixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prefix <prefix>",
		Short: "List the words starting with a prefix, in order",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSet(func(cmd *cobra.Command, args []string) error {
			for w := range a.set.WithPrefix([]rune(args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), string(w))
			}
			return nil
		}),
	}
}

func (a *app) indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index <i>...",
		Short: "Print the word at each 0-based position",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withSet(func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				i, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid index %q: %w", arg, err)
				}
				w, err := a.set.At(i)
				if err != nil {
					return fmt.Errorf("index: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i, string(w))
			}
			return nil
		}),
	}
}

func (a *app) rankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <word>...",
		Short: "Print the 0-based position of each word, or -1",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withSet(func(cmd *cobra.Command, args []string) error {
			for _, w := range args {
				pos, _ := a.set.IndexOf([]rune(w))
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", w, pos)
			}
			return nil
		}),
	}
}

func (a *app) listCmd() *cobra.Command {
	var from, to int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the words with positions in [from, to), in order",
		Args:  cobra.NoArgs,
		RunE: a.withSet(func(cmd *cobra.Command, _ []string) error {
			end := to
			if end < 0 {
				end = a.set.Len()
			}
			for w := range a.set.Range(from, end) {
				fmt.Fprintln(cmd.OutOrStdout(), string(w))
			}
			return nil
		}),
	}
	cmd.Flags().IntVar(&from, "from", 0, "first position")
	cmd.Flags().IntVar(&to, "to", -1, "end position, exclusive (default: all)")
	return cmd
}

func (a *app) scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <file>",
		Short: "Print every occurrence of a listed word in a text file",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSet(func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read text: %w", err)
			}
			sc, err := scan.NewScanner(a.set, scan.Runes)
			if err != nil {
				return fmt.Errorf("failed to build scanner: %w", err)
			}

			matches := sc.FindAll(text)
			for _, m := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", m.Start, text[m.Start:m.End])
			}
			a.log.Debug("scan finished",
				zap.String("file", args[0]),
				zap.Int("bytes", len(text)),
				zap.Int("patterns", sc.Len()),
				zap.Int("matches", len(matches)),
			)
			return nil
		}),
	}
}

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Report the lines of a file that are not in the word list",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSet(func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0])
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			workers := a.v.GetInt("workers")
			if workers < 1 {
				return fmt.Errorf("workers must be >= 1, got %d", workers)
			}

			present, err := a.checkLines(cmd, lines, workers)
			if err != nil {
				return err
			}

			missing := 0
			for i, ok := range present {
				if !ok {
					missing++
					fmt.Fprintf(cmd.OutOrStdout(), "missing\t%s\n", lines[i])
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d present\n", len(lines)-missing, len(lines))
			a.log.Info("check finished",
				zap.String("file", args[0]),
				zap.Int("lines", len(lines)),
				zap.Int("missing", missing),
				zap.Int("workers", workers),
			)
			return nil
		}),
	}
	cmd.Flags().Int("workers", runtime.GOMAXPROCS(0), "number of concurrent checkers")
	_ = a.v.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	return cmd
}

// checkLines tests every line for membership, splitting the input into one
// contiguous chunk per worker. The set is shared read-only by all workers.
func (a *app) checkLines(cmd *cobra.Command, lines []string, workers int) ([]bool, error) {
	present := make([]bool, len(lines))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)

	chunk := max((len(lines)+workers-1)/workers, 1)
	for lo := 0; lo < len(lines); lo += chunk {
		hi := min(lo+chunk, len(lines))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				present[i] = a.set.Contains([]rune(lines[i]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	return present, nil
}
