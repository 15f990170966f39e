package oddsboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FeedFixture is one fixture card as the front-end consumes it
type FeedFixture struct {
	ID             int64         `json:"id"`
	Slot           string        `json:"slot"`
	League         string        `json:"league"`
	LeagueCode     string        `json:"league_code"`
	Country        string        `json:"country"`
	CountryCode    string        `json:"country_code"`
	Home           string        `json:"home"`
	Away           string        `json:"away"`
	HomeShort      string        `json:"home_short"`
	AwayShort      string        `json:"away_short"`
	KickoffUTC     string        `json:"kickoff_utc"`
	KickoffLocal   string        `json:"kickoff_local"`
	KickoffDisplay string        `json:"kickoff_display"`
	Markets        []MarketQuote `json:"markets"`
}

// Counts summarizes the feed for the front-end header
type Counts struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
	Total     int `json:"total"`
}

// Feed is the complete output document
type Feed struct {
	RunID       string        `json:"run_id"`
	GeneratedAt string        `json:"generated_at"`
	Timezone    string        `json:"timezone"`
	Counts      Counts        `json:"counts"`
	Fixtures    []FeedFixture `json:"fixtures"`
}

// AssembleFeed concatenates the buckets in fixed order, computes the counts
// and stamps the generation time in the configured zone
func AssembleFeed(buckets *Buckets, cfg *Config, loc *time.Location) *Feed {
	feed := &Feed{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().In(loc).Format("02/01 15:04"),
		Timezone:    cfg.Timezone,
		Counts: Counts{
			Morning:   len(buckets.Morning),
			Afternoon: len(buckets.Afternoon),
			Evening:   len(buckets.Evening),
			Total:     len(buckets.Morning) + len(buckets.Afternoon) + len(buckets.Evening),
		},
	}

	feed.Fixtures = make([]FeedFixture, 0, feed.Counts.Total)
	for _, bucket := range [][]*Card{buckets.Morning, buckets.Afternoon, buckets.Evening} {
		for _, card := range bucket {
			feed.Fixtures = append(feed.Fixtures, feedFixtureFromCard(card))
		}
	}
	return feed
}

func feedFixtureFromCard(card *Card) FeedFixture {
	f := card.Fixture
	return FeedFixture{
		ID:             f.ID,
		Slot:           f.Slot,
		League:         f.LeagueName,
		LeagueCode:     f.CompetitionCode,
		Country:        f.Country,
		CountryCode:    f.CountryCode,
		Home:           f.Home.Name,
		Away:           f.Away.Name,
		HomeShort:      f.Home.ShortCode,
		AwayShort:      f.Away.ShortCode,
		KickoffUTC:     f.KickoffUTC.Format(time.RFC3339),
		KickoffLocal:   f.KickoffLocal.Format(time.RFC3339),
		KickoffDisplay: f.KickoffDisplay(),
		Markets:        card.Markets,
	}
}

// Write serializes the feed and atomically replaces the file at path. The
// temp-then-rename dance means a crashed run can never leave a truncated
// document behind for the front-end to choke on.
func (f *Feed) Write(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal feed: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".oddsboard-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write feed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
