package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lipsanen/tmemo/internal/deck"
)

func init() {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty deck",
		Args:  cobra.NoArgs,
		Run:   runInit,
	}

	RootCmd.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, args []string) {
	path := getDeckPath()
	if _, err := os.Stat(path); err == nil {
		exitErr("init", errors.New("a deck has already been initialized at "+path))
	}
	if err := deck.New().Save(path); err != nil {
		exitErr("init", err)
	}
	fmt.Printf("Deck created at %s\n", path)
}
