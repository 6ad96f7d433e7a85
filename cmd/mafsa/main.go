// Command mafsa builds a minimal automaton from a word list and queries it.
//
// Usage:
//
//	mafsa --words words.txt stats
//	mafsa --words words.txt contains apple banana
//	mafsa --words words.txt --locale sv prefix ka
//	mafsa --words words.txt index 0 10 100
//	mafsa --words words.txt check input.txt --workers 8
//
// Every global flag can also be set in a config file (--config) or through
// an environment variable prefixed MAFSA_, e.g. MAFSA_WORDS or
// MAFSA_LOG_LEVEL.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/coregx/mafsa"
)

// app carries the state shared by all subcommands.
type app struct {
	v      *viper.Viper
	log    *zap.Logger
	set    *mafsa.IndexedSet[rune]
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{v: viper.New(), stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.logger().Error("command failed", zap.Error(err))
		return 1
	}
	_ = a.logger().Sync()
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mafsa",
		Short: "mafsa builds and queries minimal acyclic automata",
		Long: "mafsa loads a word list (one element per line) into a minimal acyclic\n" +
			"finite-state automaton and answers membership, prefix and\n" +
			"order-statistic queries against it.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("words", "", "word list file, one element per line")
	flags.String("locale", "", "BCP 47 locale for collation order (default: code point order)")
	flags.Bool("allow-empty", false, "accept empty lines as the empty element")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("config", "", "config file (yaml, toml or json)")
	// Binding only fails for a nil flag set
	_ = a.v.BindPFlags(flags)

	a.v.SetEnvPrefix("MAFSA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.statsCmd(),
		a.containsCmd(),
		a.prefixCmd(),
		a.indexCmd(),
		a.rankCmd(),
		a.listCmd(),
		a.scanCmd(),
		a.checkCmd(),
	)
	return root
}

// setup reads the config file and creates the logger.
func (a *app) setup(*cobra.Command, []string) error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	log, err := newLogger(a.v.GetString("log-level"), a.stderr)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// withSet wraps a command body that needs the word list, loading it first.
func (a *app) withSet(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		set, err := loadSet(a.v.GetString("words"), a.v.GetString("locale"), a.v.GetBool("allow-empty"), a.log)
		if err != nil {
			return err
		}
		a.set = set
		return run(cmd, args)
	}
}

// logger returns the configured logger, or a default one if setup has not
// run far enough to create it.
func (a *app) logger() *zap.Logger {
	if a.log == nil {
		a.log, _ = newLogger("info", a.stderr)
	}
	return a.log
}
