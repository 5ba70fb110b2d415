//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "pyramid-optimizer",
		Short: "Search for the highest-scoring skull-card pyramid",
		Long: `pyramid-optimizer arranges a fixed pool of double-sided skull cards into a
triangular pyramid and searches, in parallel, for the arrangement with the
highest score.

Running it without a subcommand is the same as "solve".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, cfgFile)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	d := DefaultConfig()
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file")
	pf.String("cards", "", "card pool JSON file (default: built-in pool)")
	pf.Int("base", d.Base, "pyramid base width (1-10)")
	pf.Int("height", d.Height, "pyramid height (1-base)")
	pf.BoolP("verbose", "v", false, "print detailed search progress to stderr")

	f := root.Flags()
	f.Int("workers", runtime.NumCPU(), "number of leaderboard slots searched in parallel")
	f.Uint64("seed", 0, "random seed; 0 picks a fresh one per slot")
	f.StringP("output", "o", d.Output, "output format (text|json)")
	f.Bool("json", false, "shorthand for --output json")
	f.Int("shuffle-stall", d.ShuffleStall, "non-improving shuffles before a seed is accepted")
	f.Int("mutation-stall", d.MutationStall, "non-improving mutations before escalating")
	f.Int("min-mutation", d.MinMutation, "swaps per mutation at the first level")
	f.Int("max-mutation", d.MaxMutation, "swaps per mutation at the last level")
	f.Int("lineage-stall", d.LineageStall, "non-improving phases before a lineage is exhausted")
	f.Int("max-restarts", d.MaxRestarts, "reshuffles allowed per slot (0 = unlimited)")
	f.Int("exhaustive-limit", d.ExhaustiveLimit, "largest pyramid size evolved by full enumeration")

	solve := &cobra.Command{
		Use:   "solve",
		Short: "Run the parallel search and print the leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, cfgFile)
		},
	}
	solve.Flags().AddFlagSet(f)

	root.AddCommand(solve, newScoreCmd(&cfgFile), newCardsCmd(&cfgFile), newVersionCmd())
	return root
}

func runSolve(cmd *cobra.Command, cfgFile string) error {
	cfg, err := LoadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	res, err := runSession(cmd.Context(), cfg, log)
	if err != nil && len(res.Slots) == 0 {
		return err
	}

	if cfg.Output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			return encErr
		}
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), FormatLeaderboard(res))
	}
	return err
}

func newScoreCmd(cfgFile *string) *cobra.Command {
	var order string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one explicit card ordering",
		Long: `Score places the listed card IDs first (bottom row, left to right) and
fills any remaining positions with the unlisted cards in ID order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(*cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			pool, err := LoadCardPool(cfg.CardsFile)
			if err != nil {
				return err
			}
			pyr, err := cfg.Pyramid()
			if err != nil {
				return err
			}
			if err := pyr.Fits(len(pool)); err != nil {
				return err
			}
			cards, err := orderCards(pool, order)
			if err != nil {
				return err
			}

			perm := NewPermutation(cards, pyr)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprint(out, FormatPermutation(perm))
			_, _ = fmt.Fprintln(out, FormatBreakdown(perm.Grid().Breakdown()))
			return nil
		},
	}
	cmd.Flags().StringVar(&order, "order", "", "comma-separated card IDs, bottom row first")
	return cmd
}

func newCardsCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List the card pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(*cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			pool, err := LoadCardPool(cfg.CardsFile)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Faces", "Bottom", "Top"})
			for _, c := range pool {
				t.AppendRow(table.Row{c.ID, c.Faces(), c.Bottom, c.Top})
			}
			t.AppendFooter(table.Row{"", fmt.Sprintf("%d cards", len(pool)), "", ""})
			t.Render()
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pyramid-optimizer v%s\n", Version)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
