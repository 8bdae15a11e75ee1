package deduplication

import (
	"time"

	"kindledigest/types"
)

// The two selection strategies below are alternatives, never combined in one
// run: FilterSent relies on the persisted sent-items store, FilterWindow on a
// fixed UTC time window with no cross-run state.

// FilterSent keeps entries whose ID has not been delivered before and whose
// publish time falls within the 24 hours before now. Kept IDs are marked in
// the store; the caller persists the store after a successful delivery.
func FilterSent(entries []*types.Entry, store *SentStore, now time.Time) []*types.Entry {
	cutoff := now.Add(-24 * time.Hour)

	var kept []*types.Entry
	for _, e := range entries {
		if store.Contains(e.ID) {
			continue
		}
		if e.PublishedAt.Before(cutoff) {
			continue
		}
		store.MarkSent(e.ID, now)
		kept = append(kept, e)
	}
	return kept
}

// WindowFor returns the selection window ending at 02:00 UTC on now's
// calendar day and starting 24 hours earlier.
func WindowFor(now time.Time) (start, end time.Time) {
	u := now.UTC()
	end = time.Date(u.Year(), u.Month(), u.Day(), 2, 0, 0, 0, time.UTC)
	return end.Add(-24 * time.Hour), end
}

// FilterWindow keeps entries published inside the fixed window for now's
// calendar day, half-open at the end: start <= published < end. A second run
// on the same day selects the same entries again; there is no replay
// protection in this mode.
func FilterWindow(entries []*types.Entry, now time.Time) []*types.Entry {
	start, end := WindowFor(now)

	var kept []*types.Entry
	for _, e := range entries {
		p := e.PublishedAt.UTC()
		if p.Before(start) || !p.Before(end) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
