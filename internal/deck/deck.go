// Package deck owns the reviewed cards: review sessions, rescheduling and
// reconciliation against freshly parsed collections.
package deck

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/fsrs"
	"github.com/lipsanen/tmemo/internal/model"
)

// ParsingVersion is bumped whenever parsing changes the content produced
// for the same source text.
const ParsingVersion = 3

// DefaultFile is the deck file name used when none is configured.
const DefaultFile = "tmemodeck.json"

// Edit is a pending source rewrite: Old should be replaced by New in the
// file the card came from.
type Edit struct {
	Old model.Content
	New model.Content
}

// Deck is the persisted review state plus the transient session.
type Deck struct {
	Cards              []model.Card `json:"cards"`
	Orphans            []model.Card `json:"orphans"`
	BaseCards          []model.Card `json:"base_cards"`
	Params             fsrs.Params  `json:"params"`
	TrackReviewHistory bool         `json:"track_review_history"`
	ParsingVersion     int          `json:"parsing_version"`

	active    []int
	pos       int
	reviewDay date.Date
	edits     []Edit
}

// New returns an empty deck with default parameters.
func New() *Deck {
	return &Deck{
		Cards:              []model.Card{},
		Orphans:            []model.Card{},
		BaseCards:          []model.Card{},
		Params:             fsrs.DefaultParams(),
		TrackReviewHistory: true,
		ParsingVersion:     ParsingVersion,
		pos:                -1,
	}
}

// Clone returns a deep copy of the persisted fields. The session and the
// edit queue are not copied.
func (d *Deck) Clone() *Deck {
	out := &Deck{
		Cards:              cloneCards(d.Cards),
		Orphans:            cloneCards(d.Orphans),
		BaseCards:          cloneCards(d.BaseCards),
		Params:             d.Params,
		TrackReviewHistory: d.TrackReviewHistory,
		ParsingVersion:     d.ParsingVersion,
		pos:                -1,
	}
	return out
}

func cloneCards(cards []model.Card) []model.Card {
	out := make([]model.Card, len(cards))
	for i, c := range cards {
		out[i] = c
		out[i].State = c.State.Clone()
	}
	return out
}

// Load reads a deck from a JSON file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := New()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("decode deck %s: %w", path, err)
	}
	if d.Params.TargetRetention == 0 {
		d.Params = fsrs.DefaultParams()
	}
	if err := d.Params.Validate(); err != nil {
		return nil, err
	}
	if d.Cards == nil {
		d.Cards = []model.Card{}
	}
	if d.Orphans == nil {
		d.Orphans = []model.Card{}
	}
	if d.BaseCards == nil {
		d.BaseCards = []model.Card{}
	}
	d.revalidateHandles()
	return d, nil
}

// Save writes the deck as indented JSON. The file is written to a temporary
// name first and renamed into place.
func (d *Deck) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	tmp := path + ".temp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace deck: %w", err)
	}
	slog.Debug("deck saved", "path", path, "cards", len(d.Cards))
	return nil
}

// LoadTSV builds a deck from card rows, one per line, with dates relative
// to today.
func LoadTSV(r io.Reader, today date.Date) (*Deck, error) {
	d := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		card, err := model.ParseTSV(text, today)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		d.Cards = append(d.Cards, card)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tsv: %w", err)
	}
	return d, nil
}

// WriteTSV writes one row per card that is not buried.
func (d *Deck) WriteTSV(w io.Writer, today date.Date) error {
	bw := bufio.NewWriter(w)
	for i := range d.Cards {
		if d.Cards[i].State.Buried {
			continue
		}
		if _, err := fmt.Fprintln(bw, model.FormatTSV(&d.Cards[i], today)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TakeEdits returns the queued source rewrites and clears the queue.
func (d *Deck) TakeEdits() []Edit {
	edits := d.edits
	d.edits = nil
	return edits
}

// PendingEdits reports how many source rewrites are queued.
func (d *Deck) PendingEdits() int {
	return len(d.edits)
}

// revalidateHandles clears base links that no longer point into BaseCards.
func (d *Deck) revalidateHandles() {
	check := func(kind string, cards []model.Card) {
		for i := range cards {
			b := cards[i].Content.Base
			if b == nil || (*b >= 0 && *b < len(d.BaseCards)) {
				continue
			}
			slog.Warn("dropping stale base link",
				"kind", kind, "front", cards[i].Content.SingleLineFront(), "base", *b)
			cards[i].Content.Base = nil
		}
	}
	check("card", d.Cards)
	check("orphan", d.Orphans)
}
