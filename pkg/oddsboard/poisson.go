package oddsboard

import "math"

// MarketProbs holds the probabilities for every market we quote, plus the
// renormalized three-way outcome split they derive from
type MarketProbs struct {
	Over15     float64
	Over25     float64
	BTTS       float64
	HomeOrDraw float64
	AwayOrDraw float64

	HomeWin float64
	Draw    float64
	AwayWin float64
}

// Probabilities computes market probabilities from the goal expectancies,
// modeling each side's goals as an independent Poisson variable truncated at
// cfg.MaxGoals.
//
// Truncation policy: the mass lost beyond the truncation is discarded and the
// single-side markets (total goals, both teams to score) are NOT renormalized,
// but the three-way outcome split IS renormalized to sum to 1 before the
// double-chance probabilities are derived from it.
func Probabilities(exp Expectancy, cfg *Config) MarketProbs {
	lh, la := exp.LambdaHome, exp.LambdaAway
	eps := cfg.ProbEpsilon

	// Total goals follow Poisson(lambda_home + lambda_away)
	total := lh + la
	over15 := 1 - poissonPMF(0, total) - poissonPMF(1, total)
	over25 := over15 - poissonPMF(2, total)

	// Both teams to score, by independence and inclusion-exclusion
	p0h := poissonPMF(0, lh)
	p0a := poissonPMF(0, la)
	btts := 1 - p0h - p0a + p0h*p0a

	// Enumerate the truncated joint grid for the outcome split
	homePMF := pmfVector(lh, cfg.MaxGoals)
	awayPMF := pmfVector(la, cfg.MaxGoals)

	var homeWin, draw, awayWin float64
	for i := 0; i <= cfg.MaxGoals; i++ {
		for j := 0; j <= cfg.MaxGoals; j++ {
			p := homePMF[i] * awayPMF[j]
			switch {
			case i > j:
				homeWin += p
			case i == j:
				draw += p
			default:
				awayWin += p
			}
		}
	}

	// Renormalize the outcome split to sum to 1
	if mass := homeWin + draw + awayWin; mass > 0 {
		homeWin /= mass
		draw /= mass
		awayWin /= mass
	}

	return MarketProbs{
		Over15:     clamp(over15, eps, 1-eps),
		Over25:     clamp(over25, eps, 1-eps),
		BTTS:       clamp(btts, eps, 1-eps),
		HomeOrDraw: clamp(homeWin+draw, eps, 1-eps),
		AwayOrDraw: clamp(draw+awayWin, eps, 1-eps),
		HomeWin:    homeWin,
		Draw:       draw,
		AwayWin:    awayWin,
	}
}

// poissonPMF returns P(X = k) for X ~ Poisson(lambda)
func poissonPMF(k int, lambda float64) float64 {
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	// exp(-lambda + k*ln(lambda) - ln(k!)) avoids overflow for larger k
	logP := -lambda + float64(k)*math.Log(lambda) - logFactorial(k)
	return math.Exp(logP)
}

func logFactorial(k int) float64 {
	lf := 0.0
	for i := 2; i <= k; i++ {
		lf += math.Log(float64(i))
	}
	return lf
}

// pmfVector enumerates the pmf over 0..maxGoals without renormalizing
func pmfVector(lambda float64, maxGoals int) []float64 {
	v := make([]float64, maxGoals+1)
	for k := 0; k <= maxGoals; k++ {
		v[k] = poissonPMF(k, lambda)
	}
	return v
}
