package oddsboard

import (
	"fmt"
	"time"
)

// Time-of-day slots, in the fixed order the feed presents them
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
)

// TeamRef identifies one side of a fixture
type TeamRef struct {
	ID        int64
	Name      string
	ShortCode string
	CrestURL  string
}

// Fixture is the canonical internal record for one scheduled match.
// Slot is always derived from KickoffLocal; the allocator works on copies
// when it needs to override it, never on the record used for dedupe keys.
type Fixture struct {
	ID              int64
	CompetitionCode string
	LeagueName      string
	Country         string
	CountryCode     string

	KickoffUTC   time.Time
	KickoffLocal time.Time
	Slot         string

	Home TeamRef
	Away TeamRef
}

// Identity returns the stable dedupe and fallback-seed key for this fixture.
// It folds in enough of the raw data (upstream id, kickoff, team names) that
// two distinct fixtures cannot collide even if the upstream recycles ids.
func (f *Fixture) Identity() string {
	return fmt.Sprintf("%d|%s|%s|%s", f.ID, f.KickoffUTC.UTC().Format(time.RFC3339), f.Home.Name, f.Away.Name)
}

// WithSlot returns a display-variant copy of the fixture carrying the given
// slot. The receiver is left untouched.
func (f *Fixture) WithSlot(slot string) *Fixture {
	c := *f
	c.Slot = slot
	return &c
}

// KickoffDisplay formats the local kickoff for the front-end card
func (f *Fixture) KickoffDisplay() string {
	return f.KickoffLocal.Format("Mon 02/01 15:04")
}

// SlotForHour maps a local hour-of-day onto a slot.
// [06,12) morning, [12,18) afternoon, [18,24) evening. The night window
// [00,06) has no natural slot; the policy here is to fold it into evening so
// late-night fixtures stay visible rather than being dropped.
func SlotForHour(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return SlotMorning
	case hour >= 12 && hour < 18:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

// Normalize converts one raw upstream match into a canonical Fixture.
// Returns (nil, nil) for fixtures that are filtered out on purpose (already
// started, competition not in the allow-list) and (nil, error) when the raw
// record cannot be parsed. Callers drop either way; only parse failures are
// worth a warning.
func Normalize(m *apiMatch, allowed map[string]bool, loc *time.Location) (*Fixture, error) {
	if m == nil {
		return nil, fmt.Errorf("nil match record")
	}

	switch m.Status {
	case "SCHEDULED", "TIMED":
		// not yet started, keep
	default:
		return nil, nil
	}

	// Some providers omit the competition code; accept those
	if m.Competition.Code != "" && len(allowed) > 0 && !allowed[m.Competition.Code] {
		return nil, nil
	}

	kickoff, err := time.Parse(time.RFC3339, m.UTCDate)
	if err != nil {
		return nil, fmt.Errorf("unparseable kickoff %q for match %d: %w", m.UTCDate, m.ID, err)
	}

	if m.HomeTeam.Name == "" || m.AwayTeam.Name == "" {
		return nil, fmt.Errorf("match %d is missing team names", m.ID)
	}

	local := kickoff.In(loc)

	return &Fixture{
		ID:              m.ID,
		CompetitionCode: m.Competition.Code,
		LeagueName:      m.Competition.Name,
		Country:         m.Competition.Area.Name,
		CountryCode:     m.Competition.Area.Code,
		KickoffUTC:      kickoff.UTC(),
		KickoffLocal:    local,
		Slot:            SlotForHour(local.Hour()),
		Home:            teamRefFromAPI(m.HomeTeam),
		Away:            teamRefFromAPI(m.AwayTeam),
	}, nil
}

func teamRefFromAPI(t apiTeam) TeamRef {
	short := t.ShortCode
	if short == "" {
		short = t.Name
	}
	return TeamRef{
		ID:        t.ID,
		Name:      t.Name,
		ShortCode: short,
		CrestURL:  t.Crest,
	}
}
