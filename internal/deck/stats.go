package deck

import (
	"fmt"
	"strings"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/fsrs"
)

// TotalBucket is the AccuracyByDay key holding the totals over all days.
const TotalBucket = -1

// Accuracy counts answers that were not Again.
type Accuracy struct {
	Correct int
	Total   int
}

// Ratio returns Correct/Total, or 0 when nothing was answered.
func (a Accuracy) Ratio() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}

// AccuracyByDay buckets logged answers by how many days before today they
// were given. Only the first answer of each day counts for a card.
func (d *Deck) AccuracyByDay(today date.Date) map[int]Accuracy {
	out := map[int]Accuracy{TotalBucket: {}}
	for i := range d.Cards {
		log := d.Cards[i].State.ReviewLog
		for j, item := range log {
			if j > 0 && log[j-1].Day == item.Day {
				continue
			}
			correct := 0
			if item.Outcome != fsrs.Again {
				correct = 1
			}
			ago := today.Sub(item.Day)
			for _, k := range []int{TotalBucket, ago} {
				a := out[k]
				a.Correct += correct
				a.Total++
				out[k] = a
			}
		}
	}
	return out
}

// Find returns the indices of cards containing every whitespace separated
// word of query.
func (d *Deck) Find(query string) []int {
	words := strings.Fields(query)
	var out []int
	for i := range d.Cards {
		match := true
		for _, w := range words {
			if !d.Cards[i].Contains(w) {
				match = false
				break
			}
		}
		if match {
			out = append(out, i)
		}
	}
	return out
}

// ReviewLogHeader is the header line of the review log export.
const ReviewLogHeader = "card_id,review_time,review_rating,review_state,review_duration"

// ReviewLogRow is one answer in the review log export.
type ReviewLogRow struct {
	CardID    int
	Timestamp int64
	Rating    int
}

func (r ReviewLogRow) String() string {
	return fmt.Sprintf("%d,%d,%d,,", r.CardID, r.Timestamp, r.Rating)
}

const (
	msPerHour   = 60 * 60 * 1000
	sameDayStep = 10_000
)

// ReviewLogRows exports the review history of cards with a complete log.
// Only the day of an answer is known, so the first answer of a day is
// stamped at noon UTC and later ones ten seconds apart.
func (d *Deck) ReviewLogRows() []ReviewLogRow {
	epoch := date.FromYMD(1970, 1, 1)
	var rows []ReviewLogRow
	for i := range d.Cards {
		st := &d.Cards[i].State
		if !st.CompleteHistory || len(st.ReviewLog) == 0 {
			continue
		}
		var prev int64
		for j, item := range st.ReviewLog {
			g, ok := item.Outcome.Grade()
			if !ok {
				continue
			}
			ts := prev + sameDayStep
			if j == 0 || st.ReviewLog[j-1].Day != item.Day {
				ts = (int64(item.Day.Sub(epoch))*24 + 12) * msPerHour
			}
			rows = append(rows, ReviewLogRow{CardID: i, Timestamp: ts, Rating: int(g)})
			prev = ts
		}
	}
	return rows
}

// Stats summarizes the deck on a given day.
type Stats struct {
	Cards            int     `json:"cards"`
	Due              int     `json:"due"`
	Buried           int     `json:"buried"`
	Unreviewed       int     `json:"unreviewed"`
	Orphans          int     `json:"orphans"`
	BaseCards        int     `json:"base_cards"`
	AverageRetention float64 `json:"average_retention"`
}

// Stats computes the deck summary for today. AverageRetention covers the
// reviewed cards that are not buried.
func (d *Deck) Stats(today date.Date) Stats {
	s := Stats{
		Cards:     len(d.Cards),
		Due:       d.DueCount(today),
		Orphans:   len(d.Orphans),
		BaseCards: len(d.BaseCards),
	}
	var sum float64
	var reviewed int
	for i := range d.Cards {
		st := &d.Cards[i].State
		switch {
		case st.Buried:
			s.Buried++
		case st.FirstReview():
			s.Unreviewed++
		default:
			sum += st.Retention(today)
			reviewed++
		}
	}
	if reviewed > 0 {
		s.AverageRetention = sum / float64(reviewed)
	}
	return s
}
