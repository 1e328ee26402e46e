// Package cli implements the tmemo CLI commands.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lipsanen/tmemo/internal/config"
	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/deck"
	"github.com/lipsanen/tmemo/internal/logger"
	"github.com/lipsanen/tmemo/internal/rng"
	"github.com/lipsanen/tmemo/internal/source"
	"github.com/lipsanen/tmemo/internal/store"
)

var (
	configPath string
	deckPath   string
	notesRoot  string
	fromStdin  bool

	cfg *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "tmemo",
	Short: "Spaced repetition for cards kept in markdown notes",
	Long: "tmemo collects flashcards from the markdown files under the current directory " +
		"and schedules their reviews with an FSRS memory model.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		logger.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./tmemo.yaml if present)")
	RootCmd.PersistentFlags().StringVarP(&deckPath, "deck", "d", "", "Deck file (default: $TMEMO_DECK_PATH or tmemodeck.json)")
	RootCmd.PersistentFlags().StringVar(&notesRoot, "root", ".", "Directory searched for markdown notes")
	RootCmd.PersistentFlags().BoolVarP(&fromStdin, "stdin", "s", false, "Read the deck as TSV rows from stdin; changes are not saved")
}

func getDeckPath() string {
	if deckPath != "" {
		return deckPath
	}
	return cfg.DeckPath
}

func today() date.Date {
	return date.Now(cfg.DayRolloverHours)
}

func newRNG() *rng.SplitMix64 {
	return rng.New(uint64(time.Now().UnixNano()))
}

// loadDeck reads the deck from stdin or the deck file and applies the
// configured target retention.
func loadDeck() (*deck.Deck, error) {
	var d *deck.Deck
	var err error
	if fromStdin {
		d, err = deck.LoadTSV(os.Stdin, today())
	} else {
		d, err = deck.Load(getDeckPath())
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no deck at %s, run tmemo init first", getDeckPath())
		}
	}
	if err != nil {
		return nil, err
	}
	if cfg.TargetRetention > 0 {
		d.Params.TargetRetention = cfg.TargetRetention
	}
	return d, nil
}

// saveDeck writes the deck back unless it was read from stdin.
func saveDeck(d *deck.Deck) error {
	if fromStdin {
		return nil
	}
	return d.Save(getDeckPath())
}

func mustLoadDeck() *deck.Deck {
	d, err := loadDeck()
	if err != nil {
		exitErr("load deck", err)
	}
	return d
}

func mustSaveDeck(d *deck.Deck) {
	if err := saveDeck(d); err != nil {
		exitErr("save deck", err)
	}
}

// writeBack applies the deck's queued edits to the notes.
func writeBack(d *deck.Deck) int {
	n, err := source.ApplyEdits(notesRoot, d.TakeEdits())
	if err != nil {
		exitErr("write back edits", err)
	}
	return n
}

func openCache() (*store.SQLiteCache, error) {
	return store.NewSQLiteCache(cfg.CachePath)
}

func newLoader(cache store.Cache) *source.Loader {
	return &source.Loader{
		Root:   notesRoot,
		Cache:  cache,
		Parser: source.Parser{SurroundingLines: cfg.DefaultSurroundingLines},
	}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
