package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lipsanen/tmemo/internal/deck"
)

// simulationSeed keeps simulate output reproducible.
const simulationSeed = 0

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show deck statistics",
		Args:  cobra.NoArgs,
		Run:   runStats,
	})
	RootCmd.AddCommand(&cobra.Command{
		Use:   "accuracy",
		Short: "Print answer accuracy per day (days ago, accuracy, correct, total)",
		Args:  cobra.NoArgs,
		Run:   runAccuracy,
	})
	RootCmd.AddCommand(&cobra.Command{
		Use:   "review-log",
		Short: "Export the review history as CSV for the FSRS optimizer",
		Args:  cobra.NoArgs,
		Run:   runReviewLog,
	})
	RootCmd.AddCommand(&cobra.Command{
		Use:   "simulate <days>",
		Short: "Print how many cards would be due on each of the next days",
		Args:  cobra.ExactArgs(1),
		Run:   runSimulate,
	})
}

func runStats(cmd *cobra.Command, args []string) {
	d := mustLoadDeck()
	st := d.Stats(today())

	b, _ := json.MarshalIndent(st, "", "  ")
	fmt.Println(string(b))
}

func runAccuracy(cmd *cobra.Command, args []string) {
	d := mustLoadDeck()
	byDay := d.AccuracyByDay(today())
	for _, day := range slices.Sorted(maps.Keys(byDay)) {
		a := byDay[day]
		fmt.Printf("%d\t%s\t%d\t%d\n", day, strconv.FormatFloat(a.Ratio(), 'f', -1, 64), a.Correct, a.Total)
	}
}

func runReviewLog(cmd *cobra.Command, args []string) {
	d := mustLoadDeck()
	fmt.Println(deck.ReviewLogHeader)
	for _, row := range d.ReviewLogRows() {
		fmt.Println(row)
	}
}

func runSimulate(cmd *cobra.Command, args []string) {
	days, err := strconv.Atoi(args[0])
	if err != nil || days < 0 {
		exitErr("simulate", fmt.Errorf("invalid number of days %q", args[0]))
	}

	d := mustLoadDeck()
	counts, err := d.Simulate(today(), days, simulationSeed)
	if err != nil {
		exitErr("simulate", err)
	}
	for i, n := range counts {
		fmt.Printf("%d %d\n", i, n)
	}
}
