package oddsboard

import "math"

// Market labels, fixed across the feed. The front-end keys off these strings.
const (
	MarketOver15     = "Over 1.5 Goals"
	MarketOver25     = "Over 2.5 Goals"
	MarketBTTS       = "Both Teams To Score"
	MarketHomeOrDraw = "Double Chance 1X"
	MarketAwayOrDraw = "Double Chance X2"
)

// marketOrder fixes the order markets appear on every fixture card
var marketOrder = []string{
	MarketOver15,
	MarketOver25,
	MarketBTTS,
	MarketHomeOrDraw,
	MarketAwayOrDraw,
}

// MarketQuote is one displayed betting proposition.
// Probability is kept for tests and logging but stays out of the feed.
type MarketQuote struct {
	Label       string  `json:"label"`
	Odd         float64 `json:"odd"`
	Probability float64 `json:"-"`
}

// QuoteOdd converts a probability into a displayed odd: invert, apply the
// bookmaker margin, round to 2 decimal places, clamp to the market's display
// range. Pure and total for probability in (0,1).
func QuoteOdd(probability, margin float64, r OddRange) float64 {
	fair := 1.0 / probability
	odd := round2(fair * (1.0 - margin))
	return clamp(odd, r.Floor, r.Ceiling)
}

// QuoteMarkets turns the computed probabilities into the fixed, ordered set
// of market quotes for one fixture
func QuoteMarkets(probs MarketProbs, cfg *Config) []MarketQuote {
	byLabel := map[string]float64{
		MarketOver15:     probs.Over15,
		MarketOver25:     probs.Over25,
		MarketBTTS:       probs.BTTS,
		MarketHomeOrDraw: probs.HomeOrDraw,
		MarketAwayOrDraw: probs.AwayOrDraw,
	}

	quotes := make([]MarketQuote, 0, len(marketOrder))
	for _, label := range marketOrder {
		p := byLabel[label]
		quotes = append(quotes, MarketQuote{
			Label:       label,
			Odd:         QuoteOdd(p, cfg.Margin, cfg.RangeFor(label)),
			Probability: p,
		})
	}
	return quotes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
