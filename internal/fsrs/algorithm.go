package fsrs

import "math"

const (
	decay    = -0.5
	invDecay = 1 / decay
	factor   = 19.0 / 81.0

	// Randomness bounds the jitter fraction to [1-Randomness, 1+Randomness].
	Randomness = 0.1
)

// forgettingCurve computes R(t, S) = (1 + FACTOR * t / S) ^ DECAY.
func forgettingCurve(elapsedDays, stability float64) float64 {
	return math.Pow(1+factor*elapsedDays/stability, decay)
}

// intervalFor returns the days until retention drops to the target, at least 1.
func intervalFor(stability float64, p *Params) float64 {
	return math.Max(stability/factor*(math.Pow(p.TargetRetention, invDecay)-1), 1)
}

// nextDifficulty applies the grade delta and reverts towards w[4] by w[7].
func nextDifficulty(d float64, g Grade, p *Params) float64 {
	next := d - p.W[6]*(float64(g)-3)
	next = p.W[7]*(p.W[4]-next) + next
	return math.Min(math.Max(next, 1), 10)
}

// recallStability computes stability after a Hard, Good or Easy answer.
// S' = S * (e^w8 * (11-D) * S^-w9 * (e^(w10*(1-R)) - 1) * hardPenalty * easyBonus + 1)
func recallStability(d, s, r float64, g Grade, p *Params) float64 {
	hardPenalty := 1.0
	if g == GradeHard {
		hardPenalty = p.W[15]
	}
	easyBonus := 1.0
	if g == GradeEasy {
		easyBonus = p.W[16]
	}
	return s * (math.Exp(p.W[8])*
		(11-d)*
		math.Pow(s, -p.W[9])*
		(math.Exp(p.W[10]*(1-r))-1)*
		hardPenalty*easyBonus + 1)
}

// forgetStability computes stability after an Again answer.
// S' = w11 * D^-w12 * ((S+1)^w13 - 1) * e^(w14*(1-R))
func forgetStability(d, s, r float64, p *Params) float64 {
	return p.W[11] *
		math.Pow(d, -p.W[12]) *
		(math.Pow(s+1, p.W[13]) - 1) *
		math.Exp(p.W[14]*(1-r))
}

// initial returns the first-review stability and difficulty for g.
func initial(g Grade, p *Params) (stability, difficulty float64) {
	switch g {
	case GradeAgain:
		return p.W[0], p.W[4] + 2*p.W[5]
	case GradeHard:
		return p.W[1], p.W[4] + p.W[5]
	case GradeGood:
		return p.W[2], p.W[4]
	default:
		return p.W[3], p.W[4] - p.W[5]
	}
}
