package oddsboard

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// SeededUniform maps a byte seed deterministically onto [lo, hi]. The seed is
// hashed with SHA-256 and the first 8 bytes, read big-endian, pick the point
// linearly. Same seed, same value, on any machine at any time; that
// reproducibility is the whole contract.
func SeededUniform(seed []byte, lo, hi float64) float64 {
	sum := sha256.Sum256(seed)
	u := binary.BigEndian.Uint64(sum[:8])
	frac := float64(u) / float64(math.MaxUint64)
	return lo + frac*(hi-lo)
}

// FallbackOdd derives a stable substitute odd for a market when no
// statistical basis exists for the fixture. The seed couples the fixture's
// identity with the market label so every market on a card differs, while
// repeated runs over the same fixture reproduce the same odds.
func FallbackOdd(identity, label string, r OddRange) float64 {
	seed := []byte(identity + "|" + label)
	return round2(SeededUniform(seed, r.Floor, r.Ceiling))
}

// FallbackMarkets produces the full ordered market set for a fixture from the
// deterministic generator. Probability is left zero: there is none.
func FallbackMarkets(identity string, cfg *Config) []MarketQuote {
	quotes := make([]MarketQuote, 0, len(marketOrder))
	for _, label := range marketOrder {
		quotes = append(quotes, MarketQuote{
			Label: label,
			Odd:   FallbackOdd(identity, label, cfg.RangeFor(label)),
		})
	}
	return quotes
}
