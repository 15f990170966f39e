package oddsboard

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// OddRange bounds the displayed odd for a single market
type OddRange struct {
	Floor   float64 `yaml:"floor"`
	Ceiling float64 `yaml:"ceiling"`
}

// Config contains all configurable parameters that influence the generated feed.
// This centralizes all magic numbers and constants for easy adjustment.
// Every field has a working default so a run is reproducible with no external
// input beyond the API token.
type Config struct {
	// === UPSTREAM API ===
	APIBaseURL string `yaml:"api_base_url"`
	// APIToken is never read from the config file, only from the environment
	APIToken string `yaml:"-"`
	// ScrapeBaseURL, when set, enables the HTML fallback for competitions the
	// JSON API refuses to serve
	ScrapeBaseURL string `yaml:"scrape_base_url"`

	// === FIXTURE SELECTION ===
	LookaheadDays int      `yaml:"lookahead_days"` // window of upcoming fixtures to consider
	Competitions  []string `yaml:"competitions"`   // allowed competition codes; fixtures without a code are accepted
	QuotaPerSlot  int      `yaml:"quota_per_slot"` // maximum fixtures per time-of-day slot

	// === LOCALIZATION ===
	Timezone string `yaml:"timezone"` // IANA zone used for kickoff_local and slot assignment

	// === FORM AND EXPECTANCY MODEL ===
	FormSampleSize  int     `yaml:"form_sample_size"` // most recent finished matches per team
	NeutralGoalsAvg float64 `yaml:"neutral_goals_avg"`
	HomeAdvantage   float64 `yaml:"home_advantage"` // multiplier on the home side expectancy
	LambdaMin       float64 `yaml:"lambda_min"`     // expectancy clamp floor
	LambdaMax       float64 `yaml:"lambda_max"`     // expectancy clamp ceiling

	// === PROBABILITY ENGINE ===
	MaxGoals    int     `yaml:"max_goals"`    // truncation of the per-side goal grid
	ProbEpsilon float64 `yaml:"prob_epsilon"` // probabilities clamped to [eps, 1-eps]

	// === MARKET QUOTING ===
	Margin    float64             `yaml:"margin"` // bookmaker haircut on the fair odd
	OddRanges map[string]OddRange `yaml:"odd_ranges"`

	// === HISTORY CACHE ===
	CachePath  string `yaml:"cache_path"`  // SQLite file for cached history responses, "" disables
	HistoryTTL string `yaml:"history_ttl"` // how long a cached team history stays fresh

	// === OUTPUT ===
	OutputPath string `yaml:"output_path"`
}

// DefaultConfig returns the default configuration with all standard values
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL: "https://api.football-data.org/v4",

		LookaheadDays: 7,
		Competitions:  []string{"PL", "PD", "SA", "BL1", "FL1", "CL"},
		QuotaPerSlot:  5,

		Timezone: "Europe/Rome",

		FormSampleSize:  6,
		NeutralGoalsAvg: 1.25,
		HomeAdvantage:   1.08,
		LambdaMin:       0.5,
		LambdaMax:       2.6,

		MaxGoals:    10,
		ProbEpsilon: 0.01,

		Margin: 0.06,
		OddRanges: map[string]OddRange{
			MarketOver15:     {Floor: 1.04, Ceiling: 3.50},
			MarketOver25:     {Floor: 1.20, Ceiling: 6.00},
			MarketBTTS:       {Floor: 1.30, Ceiling: 4.50},
			MarketHomeOrDraw: {Floor: 1.01, Ceiling: 2.50},
			MarketAwayOrDraw: {Floor: 1.01, Ceiling: 2.50},
		},

		CachePath:  ".oddsboard/history.db",
		HistoryTTL: "6h",

		OutputPath: "events.json",
	}
}

// LoadConfig builds the effective configuration: defaults, then the optional
// YAML file, then environment variable overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables on top of whatever is already set
func (c *Config) applyEnv() {
	if v := os.Getenv("ODDSBOARD_API_TOKEN"); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv("ODDSBOARD_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("ODDSBOARD_COMPETITIONS"); v != "" {
		parts := strings.Split(v, ",")
		codes := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				codes = append(codes, p)
			}
		}
		c.Competitions = codes
	}
	if v := os.Getenv("ODDSBOARD_LOOKAHEAD_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LookaheadDays = n
		}
	}
	if v := os.Getenv("ODDSBOARD_QUOTA_PER_SLOT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.QuotaPerSlot = n
		}
	}
	if v := os.Getenv("ODDSBOARD_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("ODDSBOARD_MARGIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Margin = f
		}
	}
	if v := os.Getenv("ODDSBOARD_FORM_SAMPLE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FormSampleSize = n
		}
	}
	if v := os.Getenv("ODDSBOARD_HOME_ADVANTAGE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.HomeAdvantage = f
		}
	}
	if v := os.Getenv("ODDSBOARD_CACHE_PATH"); v != "" {
		c.CachePath = v
	}
	if v := os.Getenv("ODDSBOARD_OUTPUT_PATH"); v != "" {
		c.OutputPath = v
	}
}

// Validate ensures all configuration values are within reasonable ranges.
// A failure here is fatal: the run aborts before anything is fetched or written.
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return fmt.Errorf("missing API token: set ODDSBOARD_API_TOKEN")
	}
	if c.LookaheadDays < 1 {
		return fmt.Errorf("lookahead_days must be at least 1, got: %d", c.LookaheadDays)
	}
	if c.QuotaPerSlot < 1 {
		return fmt.Errorf("quota_per_slot must be at least 1, got: %d", c.QuotaPerSlot)
	}
	if c.FormSampleSize < 1 {
		return fmt.Errorf("form_sample_size must be at least 1, got: %d", c.FormSampleSize)
	}
	if c.HomeAdvantage < 1.0 || c.HomeAdvantage > 1.5 {
		return fmt.Errorf("home_advantage should be between 1.0 and 1.5, got: %f", c.HomeAdvantage)
	}
	if c.LambdaMin <= 0 || c.LambdaMax <= c.LambdaMin {
		return fmt.Errorf("lambda range must satisfy 0 < min < max, got: [%f, %f]", c.LambdaMin, c.LambdaMax)
	}
	if c.MaxGoals < 3 {
		return fmt.Errorf("max_goals should be at least 3 to capture realistic scores, got: %d", c.MaxGoals)
	}
	if c.ProbEpsilon <= 0 || c.ProbEpsilon >= 0.5 {
		return fmt.Errorf("prob_epsilon must be in (0, 0.5), got: %f", c.ProbEpsilon)
	}
	if c.Margin < 0 || c.Margin >= 1 {
		return fmt.Errorf("margin must be in [0, 1), got: %f", c.Margin)
	}
	for label, r := range c.OddRanges {
		if r.Floor < 1.0 || r.Ceiling <= r.Floor {
			return fmt.Errorf("odd range for %q must satisfy 1.0 <= floor < ceiling, got: [%f, %f]", label, r.Floor, r.Ceiling)
		}
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if _, err := c.HistoryTTLDuration(); err != nil {
		return fmt.Errorf("invalid history_ttl %q: %w", c.HistoryTTL, err)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path must not be empty")
	}
	return nil
}

// Location resolves the configured IANA zone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// HistoryTTLDuration parses the configured cache freshness window
func (c *Config) HistoryTTLDuration() (time.Duration, error) {
	if c.HistoryTTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.HistoryTTL)
}

// RangeFor returns the configured display range for a market label.
// Unknown labels get a wide permissive range rather than an error.
func (c *Config) RangeFor(label string) OddRange {
	if r, ok := c.OddRanges[label]; ok {
		return r
	}
	return OddRange{Floor: 1.01, Ceiling: 10.0}
}
