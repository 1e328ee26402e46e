package deck

import (
	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/fsrs"
	"github.com/lipsanen/tmemo/internal/model"
	"github.com/lipsanen/tmemo/internal/rng"
)

// balanceThreshold is the stability above which a finished card may be
// shifted by a day to flatten the review load.
const balanceThreshold = 2.0

func (d *Deck) dueIndices(day date.Date) []int {
	var out []int
	for i := range d.Cards {
		st := &d.Cards[i].State
		if !st.Buried && day.IsOnOrAfter(st.ReviewDate) {
			out = append(out, i)
		}
	}
	return out
}

// DueCount returns how many cards are due on day.
func (d *Deck) DueCount(day date.Date) int {
	return len(d.dueIndices(day))
}

// StartReview starts a session over the cards due on day.
func (d *Deck) StartReview(day date.Date, r *rng.SplitMix64) {
	d.start(day, d.dueIndices(day), r)
}

// StartAllReview starts a session over every card that is not buried.
func (d *Deck) StartAllReview(day date.Date, r *rng.SplitMix64) {
	var all []int
	for i := range d.Cards {
		if !d.Cards[i].State.Buried {
			all = append(all, i)
		}
	}
	d.start(day, all, r)
}

// StartRandomReview starts a session over n distinct random cards that are
// not buried. n is capped at the number of such cards.
func (d *Deck) StartRandomReview(day date.Date, r *rng.SplitMix64, n int) {
	available := 0
	for i := range d.Cards {
		if !d.Cards[i].State.Buried {
			available++
		}
	}
	n = min(n, available)

	picked := make([]int, 0, max(n, 0))
	seen := make(map[int]bool, max(n, 0))
	for len(picked) < n {
		i := r.Intn(len(d.Cards))
		if seen[i] || d.Cards[i].State.Buried {
			continue
		}
		seen[i] = true
		picked = append(picked, i)
	}
	d.start(day, picked, r)
}

func (d *Deck) start(day date.Date, indices []int, r *rng.SplitMix64) {
	d.StopReview()
	d.active = indices
	d.reviewDay = day
	d.pickPosition(r)
}

// StopReview ends the session.
func (d *Deck) StopReview() {
	d.active = nil
	d.pos = -1
	d.reviewDay = date.Date{}
}

// ActiveCount returns the number of cards left in the session.
func (d *Deck) ActiveCount() int {
	return len(d.active)
}

// CurrentIndex returns the Cards index of the card under review.
func (d *Deck) CurrentIndex() (int, bool) {
	if d.pos < 0 || d.pos >= len(d.active) {
		return 0, false
	}
	return d.active[d.pos], true
}

// CurrentCard returns the card under review.
func (d *Deck) CurrentCard() (*model.Card, bool) {
	i, ok := d.CurrentIndex()
	if !ok {
		return nil, false
	}
	return &d.Cards[i], true
}

// Answer reviews the current card. Cards answered Again stay in the session;
// every other outcome removes the card and may move its due date by one day
// towards a less loaded neighbour.
func (d *Deck) Answer(o fsrs.Outcome, r *rng.SplitMix64) (fsrs.Result, error) {
	idx, ok := d.CurrentIndex()
	if !ok {
		return fsrs.ResultDiscard, ErrNoActiveReview
	}
	st := &d.Cards[idx].State
	res, err := st.ReviewWithRNG(o, d.reviewDay, d.TrackReviewHistory, r, &d.Params)
	if err != nil {
		return res, err
	}

	if res == fsrs.ResultDiscard {
		if o != fsrs.Bury && st.Stability > balanceThreshold {
			shifted, err := st.ReviewDate.AddDays(d.balanceOffset(st.ReviewDate))
			if err != nil {
				return res, err
			}
			st.ReviewDate = shifted
		}
		d.active = append(d.active[:d.pos], d.active[d.pos+1:]...)
	}
	d.pickPosition(r)
	return res, nil
}

// pickPosition chooses the next card, never the one just shown when another
// is available.
func (d *Deck) pickPosition(r *rng.SplitMix64) {
	prev := d.pos
	switch n := len(d.active); n {
	case 0:
		d.pos = -1
	case 1:
		d.pos = 0
	default:
		p := r.Intn(n)
		for p == prev {
			p = r.Intn(n)
		}
		d.pos = p
	}
}

// balanceOffset returns -1, 0 or +1: the shift that moves a review off a day
// that is a local maximum of scheduled reviews.
func (d *Deck) balanceOffset(day date.Date) int {
	var yesterday, today, tomorrow int
	for i := range d.Cards {
		switch d.Cards[i].State.ReviewDate.Sub(day) {
		case -1:
			yesterday++
		case 0:
			today++
		case 1:
			tomorrow++
		}
	}
	switch {
	case today > yesterday && tomorrow >= yesterday:
		return -1
	case today > tomorrow && yesterday > tomorrow:
		return 1
	}
	return 0
}
