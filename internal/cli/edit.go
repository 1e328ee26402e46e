package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lipsanen/tmemo/internal/cloze"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a card and write the change back to its note",
		Long: "Edit the card matching --match. Cards derived from a cloze card edit " +
			"that card instead. Use \\n in --front and --back for line breaks.",
		Args: cobra.NoArgs,
		Run:  runEdit,
	}

	cmd.Flags().StringP("match", "m", "", "Words the card must contain (required)")
	cmd.Flags().Int("index", -1, "Pick this match when several cards match")
	cmd.Flags().String("front", "", "New front")
	cmd.Flags().String("back", "", "New back")
	cmd.Flags().Bool("toggle-cloze", false, "Switch the back between {{{ }}} and ((( ))) clozes")
	cmd.MarkFlagRequired("match")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	match, _ := cmd.Flags().GetString("match")
	pick, _ := cmd.Flags().GetInt("index")
	toggle, _ := cmd.Flags().GetBool("toggle-cloze")

	if fromStdin {
		exitErr("edit", errors.New("--stdin cannot be combined with edit"))
	}

	d := mustLoadDeck()
	matches := d.Find(match)
	switch {
	case len(matches) == 0:
		exitErr("edit", fmt.Errorf("no card matches %q", match))
	case pick >= 0:
		if pick >= len(matches) {
			exitErr("edit", fmt.Errorf("index %d out of range, %d cards match", pick, len(matches)))
		}
		matches = matches[pick : pick+1]
	case len(matches) > 1:
		for i, idx := range matches {
			c := &d.Cards[idx].Content
			fmt.Printf("%d\t%s - %s\n", i, c.Prefix, c.SingleLineFront())
		}
		exitErr("edit", fmt.Errorf("%d cards match, pick one with --index", len(matches)))
	}
	index := matches[0]

	content, err := d.EditTarget(index)
	if err != nil {
		exitErr("edit", err)
	}
	if cmd.Flags().Changed("front") {
		v, _ := cmd.Flags().GetString("front")
		content.Front = unescapeNewlines(v)
	}
	if cmd.Flags().Changed("back") {
		v, _ := cmd.Flags().GetString("back")
		content.Back = unescapeNewlines(v)
	}
	if toggle {
		content.Back = cloze.Toggle(content.Back)
	}

	if err := d.EditCard(index, content); err != nil {
		exitErr("edit", err)
	}
	n := writeBack(d)
	mustSaveDeck(d)
	fmt.Printf("Card updated, %d notes changed\n", n)
}

func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
