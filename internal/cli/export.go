package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lipsanen/tmemo/internal/sheet"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export cards as TSV or an XLSX workbook",
		Long:  "Export every card that is not buried. Writes TSV rows to stdout, or a workbook with --xlsx.",
		Args:  cobra.NoArgs,
		Run:   runExport,
	}

	cmd.Flags().String("xlsx", "", "Write an XLSX workbook to this path")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	xlsx, _ := cmd.Flags().GetString("xlsx")

	d := mustLoadDeck()
	day := today()
	if xlsx == "" {
		if err := d.WriteTSV(os.Stdout, day); err != nil {
			exitErr("export", err)
		}
		return
	}

	cards := d.Cards[:0:0]
	for _, c := range d.Cards {
		if !c.State.Buried {
			cards = append(cards, c)
		}
	}
	if err := sheet.Export(xlsx, cards, day); err != nil {
		exitErr("export", err)
	}
	fmt.Printf("%d cards exported to %s\n", len(cards), xlsx)
}
