package oddsboard

import (
	"github.com/richard-senior/oddsboard/internal/logger"
)

// Result is one finished match as seen from the history collaborator
type Result struct {
	HomeID    int64
	AwayID    int64
	HomeGoals int
	AwayGoals int
}

// HistorySource provides a team's most recently finished matches
type HistorySource interface {
	RecentResults(teamID int64, limit int) ([]Result, error)
}

// TeamForm holds a team's recent scoring and conceding rates.
// SampleSize 0 means the caller is looking at neutral defaults.
type TeamForm struct {
	GoalsForAvg     float64
	GoalsAgainstAvg float64
	SampleSize      int
}

// FormEstimator computes recent form per team and memoizes it for the rest
// of the run, bounding history fetches to one per distinct team. The memo is
// owned by this instance; a new run gets a new estimator.
type FormEstimator struct {
	source     HistorySource
	sampleSize int
	neutral    float64
	memo       map[int64]TeamForm
}

// NewFormEstimator builds an estimator over the given history source
func NewFormEstimator(source HistorySource, sampleSize int, neutralAvg float64) *FormEstimator {
	return &FormEstimator{
		source:     source,
		sampleSize: sampleSize,
		neutral:    neutralAvg,
		memo:       make(map[int64]TeamForm),
	}
}

// neutralForm is what a team gets when no usable history exists. A missing
// history is a recovered failure, never a fatal one.
func (e *FormEstimator) neutralForm() TeamForm {
	return TeamForm{GoalsForAvg: e.neutral, GoalsAgainstAvg: e.neutral, SampleSize: 0}
}

// Estimate returns the team's recent form, computing it on first need
func (e *FormEstimator) Estimate(teamID int64) TeamForm {
	if form, ok := e.memo[teamID]; ok {
		return form
	}

	form := e.compute(teamID)
	e.memo[teamID] = form
	return form
}

func (e *FormEstimator) compute(teamID int64) TeamForm {
	results, err := e.source.RecentResults(teamID, e.sampleSize)
	if err != nil {
		logger.Warn("History fetch failed, using neutral form for team", teamID, err)
		return e.neutralForm()
	}

	var goalsFor, goalsAgainst, used int
	for _, r := range results {
		switch teamID {
		case r.HomeID:
			goalsFor += r.HomeGoals
			goalsAgainst += r.AwayGoals
		case r.AwayID:
			goalsFor += r.AwayGoals
			goalsAgainst += r.HomeGoals
		default:
			// result doesn't involve the queried team, skip it
			continue
		}
		used++
		if used >= e.sampleSize {
			break
		}
	}

	if used == 0 {
		logger.Debug("No usable history for team, using neutral form", teamID)
		return e.neutralForm()
	}

	return TeamForm{
		GoalsForAvg:     float64(goalsFor) / float64(used),
		GoalsAgainstAvg: float64(goalsAgainst) / float64(used),
		SampleSize:      used,
	}
}
