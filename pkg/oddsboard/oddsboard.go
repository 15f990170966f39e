package oddsboard

/**
* Oddsboard turns upcoming football fixtures into a bounded, time-balanced
* JSON feed of display odds. One invocation is one run: fetch, normalize,
* evaluate, allocate, assemble. Runs are deterministic for fixed inputs.
 */

import (
	"github.com/richard-senior/oddsboard/internal/logger"
)

// Card is one normalized fixture together with its evaluated markets
type Card struct {
	Fixture *Fixture
	Markets []MarketQuote
}

// withSlot derives a display-variant of the card carrying an overridden slot
func (c *Card) withSlot(slot string) *Card {
	return &Card{Fixture: c.Fixture.WithSlot(slot), Markets: c.Markets}
}

// Run executes one full pipeline pass against the live upstream
func Run(cfg *Config) (*Feed, error) {
	var cache *HistoryCache
	if cfg.CachePath != "" {
		ttl, err := cfg.HistoryTTLDuration()
		if err != nil {
			return nil, err
		}
		cache, err = OpenHistoryCache(cfg.CachePath, ttl)
		if err != nil {
			// degraded but not fatal: every history call just goes upstream
			logger.Warn("History cache unavailable, continuing without it", err)
			cache = nil
		} else {
			defer func() {
				cache.Prune()
				cache.Close()
			}()
		}
	}

	ds := NewDatasource(cfg, cache)
	return Generate(cfg, ds.UpcomingMatches(), ds)
}

// Generate runs the pipeline over an already-fetched set of raw fixtures.
// Split out from Run so the whole evaluation and selection path can be
// exercised without a network.
func Generate(cfg *Config, matches []*apiMatch, history HistorySource) (*Feed, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(cfg.Competitions))
	for _, code := range cfg.Competitions {
		allowed[code] = true
	}

	estimator := NewFormEstimator(history, cfg.FormSampleSize, cfg.NeutralGoalsAvg)

	var cards []*Card
	for _, m := range matches {
		fixture, err := Normalize(m, allowed, loc)
		if err != nil {
			// a single bad fixture never aborts the batch
			logger.Warn("Dropping fixture:", err)
			continue
		}
		if fixture == nil {
			continue
		}
		cards = append(cards, &Card{
			Fixture: fixture,
			Markets: evaluate(fixture, estimator, cfg),
		})
	}
	logger.Info("Evaluated fixtures:", len(cards))

	buckets := Allocate(cards, cfg.QuotaPerSlot)
	feed := AssembleFeed(buckets, cfg, loc)
	logger.Highlight("Assembled feed:", feed.Counts.Total, "fixtures")
	return feed, nil
}

// evaluate produces the market quotes for one fixture. When neither side has
// any usable history the model has no statistical basis at all, so the
// deterministic fallback takes over; otherwise neutral defaults already fill
// the gaps and the Poisson path runs.
func evaluate(fixture *Fixture, estimator *FormEstimator, cfg *Config) []MarketQuote {
	home := estimator.Estimate(fixture.Home.ID)
	away := estimator.Estimate(fixture.Away.ID)

	if home.SampleSize == 0 && away.SampleSize == 0 {
		logger.Debug("No history for either side, using fallback odds for", fixture.Home.Name, "vs", fixture.Away.Name)
		return FallbackMarkets(fixture.Identity(), cfg)
	}

	expectancy := Expect(home, away, cfg)
	return QuoteMarkets(Probabilities(expectancy, cfg), cfg)
}
