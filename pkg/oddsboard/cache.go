package oddsboard

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/richard-senior/oddsboard/internal/logger"
	_ "modernc.org/sqlite"
)

// HistoryCache stores raw team-history responses in SQLite so repeated runs
// inside the TTL don't hammer the upstream. This is purely a fetch-layer
// cache: the pipeline never keeps model state between runs.
type HistoryCache struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenHistoryCache opens (creating if necessary) the cache database at path.
// A zero ttl means entries never expire.
func OpenHistoryCache(path string, ttl time.Duration) (*HistoryCache, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	createSQL := `CREATE TABLE IF NOT EXISTS team_history (
		team_id INTEGER PRIMARY KEY,
		payload TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(createSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create team_history table: %w", err)
	}

	logger.Info("History cache initialized", path)
	return &HistoryCache{db: db, ttl: ttl}, nil
}

// Get returns the cached payload for a team if present and still fresh
func (c *HistoryCache) Get(teamID int64) ([]byte, bool) {
	var payload string
	var fetchedAt int64
	row := c.db.QueryRow("SELECT payload, fetched_at FROM team_history WHERE team_id = ?", teamID)
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if err != sql.ErrNoRows {
			logger.Warn("Failed to read history cache for team", teamID, err)
		}
		return nil, false
	}
	if c.ttl > 0 && time.Since(time.Unix(fetchedAt, 0)) > c.ttl {
		return nil, false
	}
	return []byte(payload), true
}

// Put stores or replaces the cached payload for a team
func (c *HistoryCache) Put(teamID int64, payload []byte) error {
	_, err := c.db.Exec(
		"INSERT INTO team_history (team_id, payload, fetched_at) VALUES (?, ?, ?) "+
			"ON CONFLICT(team_id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at",
		teamID, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write history cache for team %d: %w", teamID, err)
	}
	return nil
}

// Prune deletes entries older than the TTL. Called opportunistically at the
// end of a run; failure is harmless.
func (c *HistoryCache) Prune() {
	if c.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-c.ttl).Unix()
	if _, err := c.db.Exec("DELETE FROM team_history WHERE fetched_at < ?", cutoff); err != nil {
		logger.Warn("Failed to prune history cache", err)
	}
}

// Close closes the underlying database
func (c *HistoryCache) Close() error {
	return c.db.Close()
}
