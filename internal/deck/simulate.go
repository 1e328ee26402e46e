package deck

import (
	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/fsrs"
	"github.com/lipsanen/tmemo/internal/rng"
)

// Simulate reviews a copy of the deck for days consecutive days starting at
// today and returns how many cards were due on each day. A card is answered
// Good with probability equal to its predicted retention, otherwise Again.
// The deck itself is not modified.
func (d *Deck) Simulate(today date.Date, days int, seed uint64) ([]int, error) {
	sim := d.Clone()
	r := rng.New(seed)
	out := make([]int, 0, max(days, 0))

	for i := 0; i < days; i++ {
		day, err := today.AddDays(i)
		if err != nil {
			return nil, err
		}
		sim.StartReview(day, r)
		out = append(out, sim.ActiveCount())

		for {
			card, ok := sim.CurrentCard()
			if !ok {
				break
			}
			o := fsrs.Again
			if r.Float(0, 1) < card.State.Retention(day) {
				o = fsrs.Good
			}
			if _, err := sim.Answer(o, r); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
