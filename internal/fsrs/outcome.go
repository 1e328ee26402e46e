package fsrs

import (
	"encoding"
	"fmt"
)

// Outcome is the answer given for a card during review. Bury is a
// pseudo-outcome that only hides the card from scheduling.
type Outcome int

const (
	Bury Outcome = iota
	Again
	Hard
	Good
	Easy
)

// Grade is the subset of outcomes that feed the memory formulas.
// Its numeric value is the FSRS grade (Again=1 .. Easy=4).
type Grade int

const (
	GradeAgain Grade = Grade(Again)
	GradeHard  Grade = Grade(Hard)
	GradeGood  Grade = Grade(Good)
	GradeEasy  Grade = Grade(Easy)
)

var (
	outcomeNames  = [...]string{Bury: "Bury", Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"}
	outcomeByName = map[string]Outcome{
		"Bury":  Bury,
		"Again": Again,
		"Hard":  Hard,
		"Good":  Good,
		"Easy":  Easy,
	}
)

var (
	_ fmt.Stringer             = Outcome(0)
	_ encoding.TextMarshaler   = Outcome(0)
	_ encoding.TextUnmarshaler = (*Outcome)(nil)
)

// IsValid reports whether o is one of the five known outcomes.
func (o Outcome) IsValid() bool {
	return o >= Bury && o <= Easy
}

// Grade narrows o to a formula grade. ok is false for Bury and invalid values.
func (o Outcome) Grade() (g Grade, ok bool) {
	if o < Again || o > Easy {
		return 0, false
	}
	return Grade(o), true
}

func (o Outcome) String() string {
	if o.IsValid() {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOutcome, int(o))
	}
	return []byte(outcomeNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, ok := outcomeByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, text)
	}
	*o = v
	return nil
}

// Outcome widens g back to an Outcome.
func (g Grade) Outcome() Outcome {
	return Outcome(g)
}

func (g Grade) String() string {
	return Outcome(g).String()
}
