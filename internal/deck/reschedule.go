package deck

import (
	"log/slog"
	"math"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/rng"
)

// Reschedule spreads every card due before first+days over the days
// [first, first+days) with at most maxPerDay reviews each. The cap is raised
// to ceil(n/days) when it could not fit all n cards. Each card moves to the
// free day nearest its current due date, trying earlier days first.
func (d *Deck) Reschedule(first date.Date, days, maxPerDay int) error {
	if days <= 0 {
		return nil
	}

	var pending []int
	for i := range d.Cards {
		st := &d.Cards[i].State
		if !st.Buried && st.ReviewDate.Sub(first) < days {
			pending = append(pending, i)
		}
	}
	perDay := int(math.Ceil(float64(len(pending)) / float64(days)))
	maxPerDay = max(maxPerDay, perDay)
	counts := make([]int, days)

	moved := len(pending)
	for radius := 0; len(pending) > 0; radius++ {
		rest := pending[:0]
		for _, i := range pending {
			placed, err := d.place(i, first, radius, counts, maxPerDay)
			if err != nil {
				return err
			}
			if !placed {
				rest = append(rest, i)
			}
		}
		pending = rest
	}

	slog.Debug("rescheduled cards", "cards", moved, "days", days, "max_per_day", maxPerDay)
	return nil
}

func (d *Deck) place(i int, first date.Date, radius int, counts []int, limit int) (bool, error) {
	st := &d.Cards[i].State
	for off := -radius; off <= radius; off++ {
		day, err := st.ReviewDate.AddDays(off)
		if err != nil {
			return false, err
		}
		slot := day.Sub(first)
		if slot >= 0 && slot < len(counts) && counts[slot] < limit {
			st.ReviewDate = day
			counts[slot]++
			return true, nil
		}
	}
	return false, nil
}

// RescheduleFractional rescales every unburied card's current interval by a
// random factor in [1-f, 1+f], keeping it at least one day.
func (d *Deck) RescheduleFractional(f float64, r *rng.SplitMix64) error {
	for i := range d.Cards {
		st := &d.Cards[i].State
		if st.Buried {
			continue
		}
		scale := r.Float(1-f, 1+f)
		n := max(1, int(math.Round(float64(st.ReviewDate.Sub(st.LastReview))*scale)))
		next, err := st.LastReview.AddDays(n)
		if err != nil {
			return err
		}
		st.ReviewDate = next
	}
	return nil
}
