package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lipsanen/tmemo/internal/deck"
	"github.com/lipsanen/tmemo/internal/sheet"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create the deck from an XLSX workbook or a TSV file",
		Long:  "Import cards in the layout produced by export. The existing deck is only replaced with --force.",
		Args:  cobra.NoArgs,
		Run:   runImport,
	}

	cmd.Flags().String("xlsx", "", "Read cards from this XLSX workbook")
	cmd.Flags().String("tsv", "", "Read cards from this TSV file")
	cmd.Flags().Bool("force", false, "Replace an existing deck")
	cmd.MarkFlagsMutuallyExclusive("xlsx", "tsv")
	cmd.MarkFlagsOneRequired("xlsx", "tsv")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	xlsx, _ := cmd.Flags().GetString("xlsx")
	tsv, _ := cmd.Flags().GetString("tsv")
	force, _ := cmd.Flags().GetBool("force")

	if fromStdin {
		exitErr("import", errors.New("--stdin cannot be combined with import"))
	}
	path := getDeckPath()
	if _, err := os.Stat(path); err == nil && !force {
		exitErr("import", fmt.Errorf("a deck already exists at %s, use --force to replace it", path))
	}

	day := today()
	var d *deck.Deck
	if xlsx != "" {
		cards, res, err := sheet.Import(xlsx, day)
		if err != nil {
			exitErr("import", err)
		}
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		d = deck.New()
		d.Cards = append(d.Cards, cards...)
	} else {
		f, err := os.Open(tsv)
		if err != nil {
			exitErr("open tsv", err)
		}
		defer f.Close()
		d, err = deck.LoadTSV(f, day)
		if err != nil {
			exitErr("import", err)
		}
	}

	if err := d.Save(path); err != nil {
		exitErr("save deck", err)
	}
	fmt.Printf("%d cards imported\n", len(d.Cards))
}
