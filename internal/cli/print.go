package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lipsanen/tmemo/internal/model"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print every card that is not buried as a TSV row",
		Args:  cobra.NoArgs,
		Run:   runPrint,
	})
	RootCmd.AddCommand(&cobra.Command{
		Use:   "print-headers",
		Short: "Print the column names of the print output",
		Args:  cobra.NoArgs,
		Run:   runPrintHeaders,
	})
	RootCmd.AddCommand(&cobra.Command{
		Use:   "print-orphans",
		Short: "Print cards whose source text no longer exists",
		Args:  cobra.NoArgs,
		Run:   runPrintOrphans,
	})
	RootCmd.AddCommand(&cobra.Command{
		Use:   "delete-orphans",
		Short: "Forget all orphaned cards",
		Args:  cobra.NoArgs,
		Run:   runDeleteOrphans,
	})
	RootCmd.AddCommand(&cobra.Command{
		Use:   "find <words...>",
		Short: "Print cards containing all of the given words",
		Args:  cobra.MinimumNArgs(1),
		Run:   runFind,
	})
}

// Headers names the columns written by print and find.
var Headers = []string{
	"Days to review",
	"Difficulty",
	"Stability",
	"Prefix",
	"Front",
	"Back",
	"Date added",
	"Complete review history",
	"Last review",
}

func runPrint(cmd *cobra.Command, args []string) {
	d := mustLoadDeck()
	if err := d.WriteTSV(os.Stdout, today()); err != nil {
		exitErr("print", err)
	}
}

func runPrintHeaders(cmd *cobra.Command, args []string) {
	fmt.Println(strings.Join(Headers, "\t"))
}

func runPrintOrphans(cmd *cobra.Command, args []string) {
	d := mustLoadDeck()
	for i := range d.Orphans {
		c := &d.Orphans[i].Content
		fmt.Printf("%s - %s\n", c.Prefix, c.SingleLineFront())
	}
}

func runDeleteOrphans(cmd *cobra.Command, args []string) {
	d := mustLoadDeck()
	n := len(d.Orphans)
	d.Orphans = d.Orphans[:0]
	mustSaveDeck(d)
	fmt.Printf("%d orphans deleted\n", n)
}

func runFind(cmd *cobra.Command, args []string) {
	d := mustLoadDeck()
	day := today()
	for _, i := range d.Find(strings.Join(args, " ")) {
		fmt.Println(model.FormatTSV(&d.Cards[i], day))
	}
}
