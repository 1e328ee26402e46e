package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/deck"
	"github.com/lipsanen/tmemo/internal/model"
	"github.com/lipsanen/tmemo/internal/store"
)

// Loader collects the cards of every markdown file under Root. Files whose
// modification time is unchanged since the last load come from Cache.
type Loader struct {
	Root   string
	Cache  store.Cache // optional
	Parser Parser
}

// LoadStats describes where the cards of one load came from.
type LoadStats struct {
	Files  int
	Parsed int
	Cached int
	Pruned int
}

// Load parses or fetches every file and expands the cards into a collection.
func (l *Loader) Load(ctx context.Context, today date.Date) (model.Collection, LoadStats, error) {
	var st LoadStats
	files, err := Files(l.Root)
	if err != nil {
		return model.Collection{}, st, fmt.Errorf("list files: %w", err)
	}
	st.Files = len(files)

	var cards []model.Card
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
		fileCards, cached, err := l.load(ctx, f, today)
		if err != nil {
			return model.Collection{}, st, err
		}
		if cached {
			st.Cached++
		} else {
			st.Parsed++
		}
		cards = append(cards, fileCards...)
	}

	if l.Cache != nil {
		n, err := l.Cache.Prune(ctx, paths)
		if err != nil {
			return model.Collection{}, st, fmt.Errorf("prune cache: %w", err)
		}
		st.Pruned = n
	}
	slog.Debug("cards loaded", "files", st.Files, "parsed", st.Parsed, "cached", st.Cached, "cards", len(cards))

	c, err := model.NewCollection(cards)
	if err != nil {
		return model.Collection{}, st, fmt.Errorf("expand cards: %w", err)
	}
	return c, st, nil
}

func (l *Loader) load(ctx context.Context, f File, today date.Date) ([]model.Card, bool, error) {
	if l.Cache != nil {
		e, err := l.Cache.Get(ctx, f.Path)
		switch {
		case err == nil && e.Fresh(f.ModTime, deck.ParsingVersion):
			return e.Cards, true, nil
		case err != nil && !errors.Is(err, store.ErrNotFound):
			slog.Warn("cache read failed", "path", f.Path, "error", err)
		}
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", f.Path, err)
	}
	cards, err := l.Parser.Parse(string(data), today, f.Name)
	if err != nil {
		return nil, false, err
	}

	if l.Cache != nil {
		entry := store.Entry{Path: f.Path, ModTime: f.ModTime, ParsingVersion: deck.ParsingVersion, Cards: cards}
		if err := l.Cache.Put(ctx, entry); err != nil {
			slog.Warn("cache write failed", "path", f.Path, "error", err)
		}
	}
	return cards, false, nil
}
