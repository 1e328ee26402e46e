// Package fsrs implements the per-card memory model: difficulty, stability and
// the review transitions that move a card's due date.
package fsrs

import (
	"math"
	"slices"

	"github.com/lipsanen/tmemo/internal/date"
	"github.com/lipsanen/tmemo/internal/rng"
)

// Result tells the review session what to do with the answered card.
type Result int

const (
	// ResultDiscard removes the card from the active session.
	ResultDiscard Result = iota
	// ResultAgain keeps the card in the session; it is due again today.
	ResultAgain
)

func (r Result) String() string {
	if r == ResultAgain {
		return "Again"
	}
	return "Discard"
}

// State is the scheduling state of one card.
type State struct {
	DateAdded       date.Date `json:"date_added"`
	LastReview      date.Date `json:"last_review"`
	ReviewDate      date.Date `json:"review_date"`
	Difficulty      float64   `json:"difficulty"`
	Stability       float64   `json:"stability"`
	Buried          bool      `json:"buried"`
	CompleteHistory bool      `json:"complete_history"`
	ReviewLog       []LogItem `json:"review_log"`
}

// NewState returns an unreviewed state added and due on day.
func NewState(day date.Date) State {
	return State{
		DateAdded:       day,
		LastReview:      day,
		ReviewDate:      day,
		CompleteHistory: true,
		ReviewLog:       []LogItem{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.ReviewLog = slices.Clone(s.ReviewLog)
	return out
}

// FirstReview reports whether the card has never been answered.
func (s *State) FirstReview() bool {
	return s.CompleteHistory && len(s.ReviewLog) == 0
}

// Retention estimates the recall probability on day. Elapsed time is floored at one day.
func (s *State) Retention(day date.Date) float64 {
	t := math.Max(float64(day.Sub(s.LastReview)), 1)
	return forgettingCurve(t, s.Stability)
}

// Interval returns the unjittered days until retention hits the target.
func (s *State) Interval(p *Params) float64 {
	return intervalFor(s.Stability, p)
}

// ReviewWithRNG reviews the card with a jitter fraction drawn from r.
func (s *State) ReviewWithRNG(o Outcome, day date.Date, trackHistory bool, r *rng.SplitMix64, p *Params) (Result, error) {
	return s.Review(o, day, trackHistory, r.Float(1-Randomness, 1+Randomness), p)
}

// NextInterval previews the days until the next review if o were answered on
// day. Neither s nor r is modified.
func (s *State) NextInterval(o Outcome, day date.Date, r *rng.SplitMix64, p *Params) (int, error) {
	preview := s.Clone()
	if _, err := preview.ReviewWithRNG(o, day, false, r.Clone(), p); err != nil {
		return 0, err
	}
	return preview.ReviewDate.Sub(day), nil
}

// Review applies an answer given on day. jitter multiplies the computed
// interval before it is rounded to whole days.
func (s *State) Review(o Outcome, day date.Date, trackHistory bool, jitter float64, p *Params) (Result, error) {
	if o == Bury {
		s.Buried = true
		return ResultDiscard, nil
	}
	g, ok := o.Grade()
	if !ok {
		return ResultDiscard, ErrUnknownOutcome
	}

	first := s.FirstReview()
	if trackHistory {
		s.ReviewLog = append(s.ReviewLog, LogItem{Outcome: o, Day: day})
	} else {
		s.CompleteHistory = false
	}

	if first {
		s.Stability, s.Difficulty = initial(g, p)
	} else {
		retention := s.Retention(day)
		if g == GradeAgain {
			s.Stability = forgetStability(s.Difficulty, s.Stability, retention, p)
		} else {
			s.Stability = recallStability(s.Difficulty, s.Stability, retention, g, p)
		}
		s.Difficulty = nextDifficulty(s.Difficulty, g, p)
	}

	if g == GradeAgain {
		s.LastReview = day
		s.ReviewDate = day
		return ResultAgain, nil
	}
	if err := s.scheduleNext(day, jitter, p); err != nil {
		return ResultDiscard, err
	}
	return ResultDiscard, nil
}

func (s *State) scheduleNext(day date.Date, jitter float64, p *Params) error {
	days := int(math.Round(s.Interval(p) * jitter))
	next, err := day.AddDays(days)
	if err != nil {
		return err
	}
	s.LastReview = day
	s.ReviewDate = next
	return nil
}
