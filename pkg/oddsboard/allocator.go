package oddsboard

import "sort"

// Buckets holds the three slot sequences of the final feed
type Buckets struct {
	Morning   []*Card
	Afternoon []*Card
	Evening   []*Card
}

// Allocate packs evaluated fixtures into the three time-of-day buckets.
//
// Pass 1 walks the fixtures in kickoff order and places each into its natural
// slot while that bucket has capacity. Pass 2 then force-fills any short
// bucket from the still-unplaced fixtures, always topping up the currently
// least-filled bucket (ties resolve morning, afternoon, evening). Force
// assignment works on a copy so the canonical record, and with it the dedupe
// key, is never mutated.
//
// If there aren't enough distinct fixtures to fill every bucket the result is
// simply under quota; the allocator never fabricates fixtures.
func Allocate(cards []*Card, quota int) *Buckets {
	ordered := make([]*Card, len(cards))
	copy(ordered, cards)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Fixture, ordered[j].Fixture
		if !a.KickoffUTC.Equal(b.KickoffUTC) {
			return a.KickoffUTC.Before(b.KickoffUTC)
		}
		return a.Identity() < b.Identity()
	})

	buckets := &Buckets{}
	placed := make(map[string]bool)
	var unplaced []*Card

	// Pass 1: natural placement
	for _, card := range ordered {
		id := card.Fixture.Identity()
		if placed[id] {
			continue
		}
		bucket := buckets.bucket(card.Fixture.Slot)
		if len(*bucket) < quota {
			*bucket = append(*bucket, card)
			placed[id] = true
		} else {
			unplaced = append(unplaced, card)
		}
	}

	// Pass 2: force-fill short buckets, least-filled first
	for _, card := range unplaced {
		id := card.Fixture.Identity()
		if placed[id] {
			continue
		}
		slot := buckets.leastFilled()
		bucket := buckets.bucket(slot)
		if len(*bucket) >= quota {
			break // every bucket is at quota
		}
		*bucket = append(*bucket, card.withSlot(slot))
		placed[id] = true
	}

	return buckets
}

// bucket returns the sequence backing a slot name
func (b *Buckets) bucket(slot string) *[]*Card {
	switch slot {
	case SlotMorning:
		return &b.Morning
	case SlotAfternoon:
		return &b.Afternoon
	default:
		return &b.Evening
	}
}

// leastFilled picks the bucket with the fewest entries, with the fixed
// priority order morning, afternoon, evening breaking ties
func (b *Buckets) leastFilled() string {
	slot := SlotMorning
	n := len(b.Morning)
	if len(b.Afternoon) < n {
		slot = SlotAfternoon
		n = len(b.Afternoon)
	}
	if len(b.Evening) < n {
		slot = SlotEvening
	}
	return slot
}
