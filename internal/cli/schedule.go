package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "schedule <days> [max cards per day]",
		Short: "Spread all reviews due within the next days evenly",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runSchedule,
	})
	RootCmd.AddCommand(&cobra.Command{
		Use:   "schedule-random [fraction]",
		Short: "Randomize every interval by up to the given fraction (default 0.1)",
		Args:  cobra.MaximumNArgs(1),
		Run:   runScheduleRandom,
	})
}

func runSchedule(cmd *cobra.Command, args []string) {
	days, err := strconv.Atoi(args[0])
	if err != nil || days < 0 {
		exitErr("schedule", fmt.Errorf("invalid number of days %q", args[0]))
	}
	maxCards := 1
	if len(args) > 1 {
		maxCards, err = strconv.Atoi(args[1])
		if err != nil || maxCards < 0 {
			exitErr("schedule", fmt.Errorf("invalid max cards per day %q", args[1]))
		}
	}

	d := mustLoadDeck()
	fmt.Printf("Scheduling with days %d, max_cards %d\n", days, maxCards)
	if err := d.Reschedule(today(), days, maxCards); err != nil {
		exitErr("schedule", err)
	}
	mustSaveDeck(d)
}

func runScheduleRandom(cmd *cobra.Command, args []string) {
	frac := 0.1
	if len(args) > 0 {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			exitErr("schedule-random", fmt.Errorf("invalid fraction %q", args[0]))
		}
		frac = v
	}
	if frac < 0 || frac > 1 {
		exitErr("schedule-random", errors.New("fraction should be between 0 and 1"))
	}

	d := mustLoadDeck()
	fmt.Printf("Scheduling with rng, between %g and %g of optimal length\n", 1-frac, 1+frac)
	if err := d.RescheduleFractional(frac, newRNG()); err != nil {
		exitErr("schedule-random", err)
	}
	mustSaveDeck(d)
}
