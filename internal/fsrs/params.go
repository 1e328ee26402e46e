package fsrs

import "fmt"

// DefaultWeights are the FSRS v4.5 default weights.
var DefaultWeights = [17]float64{
	0.5701, 1.4436, 4.1386, 10.9355, // w[0..3]  initial stability per grade
	5.1443, 1.2006, 0.8627, 0.0362, // w[4..7]  difficulty
	1.629, 0.1342, 1.0166, // w[8..10] recall stability
	2.1174, 0.0839, 0.3204, 1.4676, // w[11..14] forget stability
	0.219, 2.8237, // w[15..16] hard penalty, easy bonus
}

// DefaultTargetRetention is the recall probability intervals are sized for.
const DefaultTargetRetention = 0.9

// Params are the weights shared by every card of a deck.
type Params struct {
	W               [17]float64 `json:"w"`
	TargetRetention float64     `json:"target_retention"`
}

// DefaultParams returns the default weights and target retention.
func DefaultParams() Params {
	return Params{W: DefaultWeights, TargetRetention: DefaultTargetRetention}
}

// Validate checks that the target retention lies in (0, 1).
func (p Params) Validate() error {
	if p.TargetRetention <= 0 || p.TargetRetention >= 1 {
		return fmt.Errorf("%w: target retention %f out of range (0, 1)", ErrInvalidParams, p.TargetRetention)
	}
	return nil
}
