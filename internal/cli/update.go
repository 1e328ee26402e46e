package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lipsanen/tmemo/internal/deck"
	"github.com/lipsanen/tmemo/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Re-read the notes and reconcile the deck with them",
		Args:  cobra.NoArgs,
		Run:   runUpdate,
	}

	cmd.Flags().Bool("no-cache", false, "Parse every file instead of using the parse cache")

	RootCmd.AddCommand(cmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	noCache, _ := cmd.Flags().GetBool("no-cache")

	d := mustLoadDeck()

	var cache store.Cache
	if !noCache {
		c, err := openCache()
		if err != nil {
			exitErr("open cache", err)
		}
		defer c.Close()
		cache = c
	}

	collection, st, err := newLoader(cache).Load(cmd.Context(), today())
	if err != nil {
		exitErr("load notes", err)
	}

	sum := d.ReplaceCards(collection)
	d.ParsingVersion = deck.ParsingVersion
	mustSaveDeck(d)

	slog.Info("deck updated",
		"files", st.Files, "parsed", st.Parsed, "cached", st.Cached,
		"kept", sum.Kept, "added", sum.Added, "relinked", sum.Relinked,
		"orphaned", sum.Orphaned, "duplicates", sum.Duplicates)
	fmt.Println("Deck updated")
}
