package oddsboard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoissonPMF(t *testing.T) {
	// Poisson(2.8) at k=0 and k=1, the basis of the over 1.5 market
	p0 := poissonPMF(0, 2.8)
	p1 := poissonPMF(1, 2.8)
	assert.InDelta(t, math.Exp(-2.8), p0, 1e-12)
	assert.InDelta(t, 2.8*math.Exp(-2.8), p1, 1e-12)

	// degenerate lambda collapses onto zero goals
	assert.Equal(t, 1.0, poissonPMF(0, 0))
	assert.Equal(t, 0.0, poissonPMF(3, 0))
}

func TestHighScoringExpectancyFavoursOver(t *testing.T) {
	cfg := DefaultConfig()
	probs := Probabilities(Expectancy{LambdaHome: 1.8, LambdaAway: 1.0}, cfg)

	// P(total <= 1) under Poisson(2.8) is well below a half, so the over
	// market must be the likely side
	under := poissonPMF(0, 2.8) + poissonPMF(1, 2.8)
	require.Less(t, under, 0.5)
	assert.Greater(t, probs.Over15, 0.5)
	assert.InDelta(t, 1-under, probs.Over15, 1e-9)
}

func TestOutcomeSplitIsRenormalized(t *testing.T) {
	cfg := DefaultConfig()
	probs := Probabilities(Expectancy{LambdaHome: 2.6, LambdaAway: 2.6}, cfg)

	// the three-way split must sum to exactly 1 after renormalization even
	// though the truncated grid loses mass at high lambdas
	assert.InDelta(t, 1.0, probs.HomeWin+probs.Draw+probs.AwayWin, 1e-9)
}

func TestDoubleChanceDerivesFromRenormalizedSplit(t *testing.T) {
	cfg := DefaultConfig()
	probs := Probabilities(Expectancy{LambdaHome: 1.4, LambdaAway: 1.1}, cfg)

	assert.InDelta(t, probs.HomeWin+probs.Draw, probs.HomeOrDraw, cfg.ProbEpsilon)
	assert.InDelta(t, probs.Draw+probs.AwayWin, probs.AwayOrDraw, cfg.ProbEpsilon)
}

func TestBothTeamsToScoreByIndependence(t *testing.T) {
	cfg := DefaultConfig()
	lh, la := 1.5, 1.2
	probs := Probabilities(Expectancy{LambdaHome: lh, LambdaAway: la}, cfg)

	p0h := math.Exp(-lh)
	p0a := math.Exp(-la)
	want := 1 - p0h - p0a + p0h*p0a
	assert.InDelta(t, want, probs.BTTS, 1e-9)
}

func TestProbabilitiesStayInOpenInterval(t *testing.T) {
	cfg := DefaultConfig()
	lambdas := []Expectancy{
		{LambdaHome: 0.5, LambdaAway: 0.5},
		{LambdaHome: 2.6, LambdaAway: 2.6},
		{LambdaHome: 0.5, LambdaAway: 2.6},
	}
	for _, exp := range lambdas {
		probs := Probabilities(exp, cfg)
		for label, p := range map[string]float64{
			"over15": probs.Over15,
			"over25": probs.Over25,
			"btts":   probs.BTTS,
			"dc1x":   probs.HomeOrDraw,
			"dcx2":   probs.AwayOrDraw,
		} {
			assert.GreaterOrEqual(t, p, cfg.ProbEpsilon, label)
			assert.LessOrEqual(t, p, 1-cfg.ProbEpsilon, label)
		}
	}
}
