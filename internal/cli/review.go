package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/deck"
	"github.com/lipsanen/tmemo/internal/fsrs"
	"github.com/lipsanen/tmemo/internal/rng"
)

func init() {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review due cards",
		Long: "Review cards one at a time. Press enter to reveal the answer, then grade it " +
			"with 1 (again), 2 (hard), 3 (good) or 4 (easy), b to bury the card or q to stop.",
		Args: cobra.NoArgs,
		Run:  runReview,
	}

	cmd.Flags().Bool("all", false, "Review every card that is not buried")
	cmd.Flags().Int("random", 0, "Review this many random cards")

	RootCmd.AddCommand(cmd)
}

func runReview(cmd *cobra.Command, args []string) {
	all, _ := cmd.Flags().GetBool("all")
	random, _ := cmd.Flags().GetInt("random")

	if fromStdin {
		exitErr("review", errors.New("--stdin cannot be combined with review"))
	}

	d := mustLoadDeck()
	day := today()
	r := newRNG()
	switch {
	case random > 0:
		d.StartRandomReview(day, r, random)
	case all:
		d.StartAllReview(day, r)
	default:
		d.StartReview(day, r)
	}

	n, err := reviewLoop(os.Stdin, os.Stdout, d, day, r)
	mustSaveDeck(d)
	if err != nil {
		exitErr("review", err)
	}
	fmt.Printf("%d cards reviewed\n", n)
}

var answerKeys = map[string]fsrs.Outcome{
	"1": fsrs.Again,
	"2": fsrs.Hard,
	"3": fsrs.Good,
	"4": fsrs.Easy,
	"b": fsrs.Bury,
}

// reviewLoop runs the active session of d against line-based input until it
// is empty, the user quits or input ends. It returns the number of answers.
func reviewLoop(in io.Reader, out io.Writer, d *deck.Deck, day date.Date, r *rng.SplitMix64) (int, error) {
	sc := bufio.NewScanner(in)
	answered := 0
	for {
		card, ok := d.CurrentCard()
		if !ok {
			fmt.Fprintln(out, "No more cards to review.")
			return answered, nil
		}

		fmt.Fprintf(out, "\n[%d left] %s\n\n%s\n", d.ActiveCount(), card.Content.Prefix, strings.TrimRight(card.Content.Front, "\n"))
		fmt.Fprint(out, "(enter to show the answer) ")
		if !sc.Scan() {
			return answered, sc.Err()
		}
		if strings.TrimSpace(sc.Text()) == "q" {
			return answered, nil
		}

		fmt.Fprintf(out, "\n%s\n\n", strings.TrimRight(card.Content.Back, "\n"))
		var choices []string
		for i, o := range []fsrs.Outcome{fsrs.Again, fsrs.Hard, fsrs.Good, fsrs.Easy} {
			days, err := card.State.NextInterval(o, day, r, &d.Params)
			if err != nil {
				return answered, err
			}
			choices = append(choices, fmt.Sprintf("%d) %s %dd", i+1, o, days))
		}
		choices = append(choices, "b) Bury", "q) Quit")
		fmt.Fprintln(out, strings.Join(choices, "  "))

		var outcome fsrs.Outcome
		for {
			fmt.Fprint(out, "> ")
			if !sc.Scan() {
				return answered, sc.Err()
			}
			key := strings.ToLower(strings.TrimSpace(sc.Text()))
			if key == "q" {
				return answered, nil
			}
			o, ok := answerKeys[key]
			if ok {
				outcome = o
				break
			}
			fmt.Fprintln(out, "answer with 1, 2, 3, 4, b or q")
		}

		if _, err := d.Answer(outcome, r); err != nil {
			return answered, err
		}
		answered++
	}
}
