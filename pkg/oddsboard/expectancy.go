package oddsboard

import "math"

// Expectancy holds the expected-goals values driving the Poisson model
type Expectancy struct {
	LambdaHome float64
	LambdaAway float64
}

// Expect derives expected goals for a fixture from the two teams' form.
// The home side gets a fixed advantage multiplier; both values are clamped
// into the configured plausible range so degenerate markets cannot occur.
func Expect(home, away TeamForm, cfg *Config) Expectancy {
	homeFor := sanitize(home.GoalsForAvg, cfg.NeutralGoalsAvg)
	homeAgainst := sanitize(home.GoalsAgainstAvg, cfg.NeutralGoalsAvg)
	awayFor := sanitize(away.GoalsForAvg, cfg.NeutralGoalsAvg)
	awayAgainst := sanitize(away.GoalsAgainstAvg, cfg.NeutralGoalsAvg)

	lambdaHome := (homeFor + awayAgainst) / 2 * cfg.HomeAdvantage
	lambdaAway := (awayFor + homeAgainst) / 2

	return Expectancy{
		LambdaHome: clamp(lambdaHome, cfg.LambdaMin, cfg.LambdaMax),
		LambdaAway: clamp(lambdaAway, cfg.LambdaMin, cfg.LambdaMax),
	}
}

// sanitize replaces non-finite or negative inputs with the neutral default
func sanitize(v, neutral float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return neutral
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
