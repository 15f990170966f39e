package oddsboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededUniformIsStable(t *testing.T) {
	seed := []byte("2024-08-17|Foo FC|Bar United")
	first := SeededUniform(seed, 1.0, 4.0)
	second := SeededUniform(seed, 1.0, 4.0)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 1.0)
	assert.LessOrEqual(t, first, 4.0)
}

func TestSeededUniformDivergesAcrossSeeds(t *testing.T) {
	a := SeededUniform([]byte("fixture-a"), 1.0, 4.0)
	b := SeededUniform([]byte("fixture-b"), 1.0, 4.0)
	assert.NotEqual(t, a, b)
}

func TestFallbackOddVariesByMarket(t *testing.T) {
	r := OddRange{Floor: 1.20, Ceiling: 6.00}
	over := FallbackOdd("123|2024-08-17T15:00:00Z|Foo|Bar", MarketOver15, r)
	btts := FallbackOdd("123|2024-08-17T15:00:00Z|Foo|Bar", MarketBTTS, r)

	assert.NotEqual(t, over, btts)
}

func TestFallbackMarketsAreReproducible(t *testing.T) {
	cfg := DefaultConfig()
	identity := "456|2024-08-18T19:45:00Z|Alpha|Beta"

	first := FallbackMarkets(identity, cfg)
	second := FallbackMarkets(identity, cfg)
	require.Len(t, first, 5)
	assert.Equal(t, first, second)

	for _, q := range first {
		r := cfg.RangeFor(q.Label)
		assert.GreaterOrEqual(t, q.Odd, r.Floor, q.Label)
		assert.LessOrEqual(t, q.Odd, r.Ceiling, q.Label)
		assert.Zero(t, q.Probability)
	}
}

func TestFallbackMarketsKeepFixedOrder(t *testing.T) {
	cfg := DefaultConfig()
	quotes := FallbackMarkets("789|2024-08-19T12:30:00Z|Gamma|Delta", cfg)

	labels := make([]string, 0, len(quotes))
	for _, q := range quotes {
		labels = append(labels, q.Label)
	}
	assert.Equal(t, []string{
		MarketOver15, MarketOver25, MarketBTTS, MarketHomeOrDraw, MarketAwayOrDraw,
	}, labels)
}
