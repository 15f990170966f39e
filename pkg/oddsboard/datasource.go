package oddsboard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/richard-senior/oddsboard/internal/logger"
	"github.com/richard-senior/oddsboard/pkg/transport"
)

/////////////////////////////////////////////////////////////////////////
////// Upstream wire types
/////////////////////////////////////////////////////////////////////////

type apiArea struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type apiCompetition struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Area apiArea `json:"area"`
}

type apiTeam struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortCode string `json:"tla"`
	Crest     string `json:"crest"`
}

// pointers distinguish "no score yet" from an actual 0
type apiScoreSide struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type apiScore struct {
	FullTime apiScoreSide `json:"fullTime"`
}

type apiMatch struct {
	ID          int64          `json:"id"`
	UTCDate     string         `json:"utcDate"`
	Status      string         `json:"status"`
	Competition apiCompetition `json:"competition"`
	HomeTeam    apiTeam        `json:"homeTeam"`
	AwayTeam    apiTeam        `json:"awayTeam"`
	Score       apiScore       `json:"score"`
}

type apiMatchList struct {
	Matches []*apiMatch `json:"matches"`
}

/////////////////////////////////////////////////////////////////////////
////// Datasource
/////////////////////////////////////////////////////////////////////////

// Datasource fetches upcoming fixtures and per-team result history from the
// upstream provider. Retry and backoff are the provider's concern, not ours:
// a failed competition fetch is logged and excluded, a failed history fetch
// degrades that team to neutral form.
type Datasource struct {
	baseURL       string
	token         string
	scrapeBaseURL string
	lookaheadDays int
	competitions  []string
	cache         *HistoryCache
}

// NewDatasource wires a datasource from config. cache may be nil, which
// simply disables response caching.
func NewDatasource(cfg *Config, cache *HistoryCache) *Datasource {
	return &Datasource{
		baseURL:       cfg.APIBaseURL,
		token:         cfg.APIToken,
		scrapeBaseURL: cfg.ScrapeBaseURL,
		lookaheadDays: cfg.LookaheadDays,
		competitions:  cfg.Competitions,
		cache:         cache,
	}
}

func (d *Datasource) headers() map[string]string {
	return map[string]string{"X-Auth-Token": d.token}
}

// UpcomingMatches returns the raw upstream fixtures for the lookahead window
// across all configured competitions. Individual competition failures are
// recovered: the competition is excluded and the run continues.
func (d *Datasource) UpcomingMatches() []*apiMatch {
	from := time.Now().UTC().Format("2006-01-02")
	to := time.Now().UTC().AddDate(0, 0, d.lookaheadDays).Format("2006-01-02")

	var all []*apiMatch
	for _, code := range d.competitions {
		matches, err := d.fetchCompetition(code, from, to)
		if err != nil {
			logger.Warn("Failed to fetch competition, excluding it from this run:", code, err)
			if d.scrapeBaseURL != "" {
				matches, err = d.scrapeCompetition(code)
				if err != nil {
					logger.Warn("Scrape fallback also failed for", code, err)
					continue
				}
				logger.Info("Recovered competition via scrape fallback:", code, len(matches))
			} else {
				continue
			}
		}
		all = append(all, matches...)
	}
	logger.Info("Fetched upcoming fixtures:", len(all))
	return all
}

func (d *Datasource) fetchCompetition(code, from, to string) ([]*apiMatch, error) {
	url := fmt.Sprintf("%s/competitions/%s/matches?status=SCHEDULED&dateFrom=%s&dateTo=%s",
		d.baseURL, code, from, to)
	body, err := transport.GetJSON(url, d.headers())
	if err != nil {
		return nil, err
	}
	var list apiMatchList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode matches for %s: %w", code, err)
	}
	return list.Matches, nil
}

// scrapeCompetition pulls fixtures out of the JSON payload embedded in the
// provider's rendered league page
func (d *Datasource) scrapeCompetition(code string) ([]*apiMatch, error) {
	url := fmt.Sprintf("%s/%s", d.scrapeBaseURL, code)
	html, err := transport.GetHtml(url)
	if err != nil {
		return nil, err
	}
	return ExtractMatchesFromHTML(html)
}

// RecentResults implements HistorySource. It fetches the team's most recent
// finished matches, going through the SQLite cache when one is configured so
// repeated runs inside the TTL reuse the payload.
func (d *Datasource) RecentResults(teamID int64, limit int) ([]Result, error) {
	var body []byte

	if d.cache != nil {
		if cached, ok := d.cache.Get(teamID); ok {
			logger.Debug("History cache hit for team", teamID)
			body = cached
		}
	}

	if body == nil {
		url := fmt.Sprintf("%s/teams/%d/matches?status=FINISHED&limit=%d", d.baseURL, teamID, limit)
		fetched, err := transport.GetJSON(url, d.headers())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch history for team %d: %w", teamID, err)
		}
		body = fetched
		if d.cache != nil {
			if err := d.cache.Put(teamID, body); err != nil {
				logger.Warn("Failed to cache history for team", teamID, err)
			}
		}
	}

	var list apiMatchList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode history for team %d: %w", teamID, err)
	}

	results := make([]Result, 0, len(list.Matches))
	for _, m := range list.Matches {
		// only matches with a parseable final score count towards form
		if m.Score.FullTime.Home == nil || m.Score.FullTime.Away == nil {
			continue
		}
		results = append(results, Result{
			HomeID:    m.HomeTeam.ID,
			AwayID:    m.AwayTeam.ID,
			HomeGoals: *m.Score.FullTime.Home,
			AwayGoals: *m.Score.FullTime.Away,
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}
