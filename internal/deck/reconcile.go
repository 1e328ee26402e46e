package deck

import (
	"log/slog"
	"slices"

	"github.com/lipsanen/tmemo/internal/model"
)

// Summary counts what ReplaceCards did with each card.
type Summary struct {
	Kept       int
	Orphaned   int
	Relinked   int
	Added      int
	Duplicates int
}

// ReplaceCards merges a freshly parsed collection into the deck. Cards whose
// key still exists adopt the new content and keep their memory state. Cards
// whose key vanished become orphans; a new card with the same front as an
// orphan inherits that orphan's state. Of cards sharing a key only the first
// is kept, and it is marked not editable.
func (d *Deck) ReplaceCards(c model.Collection) Summary {
	var sum Summary

	fresh := make([]model.Card, 0, len(c.Cards))
	byKey := make(map[model.Key]int, len(c.Cards))
	for _, card := range c.Cards {
		k := card.Content.Key()
		if i, ok := byKey[k]; ok {
			fresh[i].Content.Editable = false
			sum.Duplicates++
			continue
		}
		byKey[k] = len(fresh)
		fresh = append(fresh, card)
	}

	claimed := make([]bool, len(fresh))
	updated := make([]model.Card, 0, len(fresh))
	for _, old := range d.Cards {
		if i, ok := byKey[old.Content.Key()]; ok && !claimed[i] {
			claimed[i] = true
			old.Content = fresh[i].Content
			updated = append(updated, old)
			sum.Kept++
			continue
		}
		// BaseCards is replaced below, so an orphan's link would index an
		// unrelated root.
		old.Content.Base = nil
		old.Content.ChildIndex = nil
		d.Orphans = append(d.Orphans, old)
		sum.Orphaned++
	}

	for i, card := range fresh {
		if claimed[i] {
			continue
		}
		if j := slices.IndexFunc(d.Orphans, func(o model.Card) bool {
			return o.Content.Front == card.Content.Front
		}); j >= 0 {
			card.State = d.Orphans[j].State
			d.Orphans = slices.Delete(d.Orphans, j, j+1)
			sum.Relinked++
		} else {
			sum.Added++
		}
		updated = append(updated, card)
	}

	slices.SortStableFunc(updated, model.CompareFront)
	d.StopReview()
	d.Cards = updated
	d.BaseCards = c.BaseCards
	if d.BaseCards == nil {
		d.BaseCards = []model.Card{}
	}
	d.revalidateHandles()

	slog.Debug("reconciled deck",
		"kept", sum.Kept, "orphaned", sum.Orphaned, "relinked", sum.Relinked,
		"added", sum.Added, "duplicates", sum.Duplicates)
	return sum
}
