package oddsboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidatesWithToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIToken = "test-token"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRequiresToken(t *testing.T) {
	t.Setenv("ODDSBOARD_API_TOKEN", "")
	cfg := DefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ODDSBOARD_API_TOKEN")
}

func TestValidateCatchesBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"lookahead":      func(c *Config) { c.LookaheadDays = 0 },
		"quota":          func(c *Config) { c.QuotaPerSlot = 0 },
		"sample size":    func(c *Config) { c.FormSampleSize = 0 },
		"home advantage": func(c *Config) { c.HomeAdvantage = 2.0 },
		"lambda range":   func(c *Config) { c.LambdaMin = 3.0 },
		"max goals":      func(c *Config) { c.MaxGoals = 1 },
		"epsilon":        func(c *Config) { c.ProbEpsilon = 0.7 },
		"margin":         func(c *Config) { c.Margin = 1.5 },
		"odd range":      func(c *Config) { c.OddRanges[MarketBTTS] = OddRange{Floor: 2.0, Ceiling: 1.5} },
		"timezone":       func(c *Config) { c.Timezone = "Mars/Olympus" },
		"ttl":            func(c *Config) { c.HistoryTTL = "sixish hours" },
		"output":         func(c *Config) { c.OutputPath = "" },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		cfg.APIToken = "test-token"
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestLoadConfigAppliesYAMLOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oddsboard.yaml")
	yaml := `
lookahead_days: 3
quota_per_slot: 8
timezone: UTC
competitions: [PL, SA]
margin: 0.08
history_ttl: 12h
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.LookaheadDays)
	assert.Equal(t, 8, cfg.QuotaPerSlot)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, []string{"PL", "SA"}, cfg.Competitions)
	assert.Equal(t, 0.08, cfg.Margin)
	// untouched fields keep their defaults
	assert.Equal(t, 6, cfg.FormSampleSize)
	assert.Equal(t, "events.json", cfg.OutputPath)

	ttl, err := cfg.HistoryTTLDuration()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, ttl)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oddsboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quota_per_slot: 8\n"), 0644))

	t.Setenv("ODDSBOARD_API_TOKEN", "from-env")
	t.Setenv("ODDSBOARD_QUOTA_PER_SLOT", "2")
	t.Setenv("ODDSBOARD_COMPETITIONS", "PL, CL ,")
	t.Setenv("ODDSBOARD_TIMEZONE", "UTC")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.APIToken)
	assert.Equal(t, 2, cfg.QuotaPerSlot)
	assert.Equal(t, []string{"PL", "CL"}, cfg.Competitions)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTokenNeverComesFromTheFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oddsboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_token: leaked\n"), 0644))

	t.Setenv("ODDSBOARD_API_TOKEN", "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.APIToken)
}

func TestRangeForUnknownLabelIsPermissive(t *testing.T) {
	cfg := DefaultConfig()
	r := cfg.RangeFor("Correct Score 7-7")
	assert.Equal(t, OddRange{Floor: 1.01, Ceiling: 10.0}, r)
}
