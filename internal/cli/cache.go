package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lipsanen/tmemo/internal/deck"
)

func init() {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the parse cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show parse cache statistics",
		Args:  cobra.NoArgs,
		Run:   runCacheStats,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached files",
		Args:  cobra.NoArgs,
		Run:   runCacheList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached parse",
		Args:  cobra.NoArgs,
		Run:   runCacheClear,
	})

	RootCmd.AddCommand(cmd)
}

func runCacheStats(cmd *cobra.Command, args []string) {
	c, err := openCache()
	if err != nil {
		exitErr("open cache", err)
	}
	defer c.Close()

	st, err := c.Stats(cmd.Context(), cfg.CachePath, deck.ParsingVersion)
	if err != nil {
		exitErr("stats", err)
	}

	b, _ := json.MarshalIndent(st, "", "  ")
	fmt.Println(string(b))
}

func runCacheList(cmd *cobra.Command, args []string) {
	c, err := openCache()
	if err != nil {
		exitErr("open cache", err)
	}
	defer c.Close()

	entries, err := c.List(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}
	for _, e := range entries {
		fmt.Printf("%s\t%s\tv%d\n", e.Path, e.ModTime.Format("2006-01-02 15:04:05"), e.ParsingVersion)
	}
}

func runCacheClear(cmd *cobra.Command, args []string) {
	c, err := openCache()
	if err != nil {
		exitErr("open cache", err)
	}
	defer c.Close()

	n, err := c.Prune(cmd.Context(), nil)
	if err != nil {
		exitErr("clear", err)
	}
	fmt.Printf("%d cached files dropped\n", n)
}
