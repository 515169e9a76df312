package schedule

import (
	"sort"
	"time"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run applies the slot pipeline in a fixed order: stable sort by start,
// deduplication, continuation suppression, admission window. The input
// slice is not modified and the stages are idempotent once applied.
func (f *Filterer) Run(slots []Slot, venueConfig *VenueConfig) []Slot {
	if len(slots) == 0 {
		return nil
	}

	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	surviving := f.suppressContinuations(f.dedup(sorted))

	admitted := make([]Slot, 0, len(surviving))
	for _, slot := range surviving {
		if f.admit(slot, venueConfig.WindowFor(slot.Weekday)) {
			admitted = append(admitted, slot)
		}
	}

	return admitted
}

// dedup keeps the first occurrence of each dedup key. The input is already
// sorted, which makes "first" deterministic.
func (f *Filterer) dedup(slots []Slot) []Slot {
	seen := make(map[string]bool, len(slots))
	unique := make([]Slot, 0, len(slots))

	for _, slot := range slots {
		if seen[slot.DedupKey] {
			continue
		}
		seen[slot.DedupKey] = true
		unique = append(unique, slot)
	}

	return unique
}

// suppressContinuations drops a 30-minute slot that starts exactly where a
// longer slot on the same date ends. Such slots are sub-divisions of the
// longer booking, not independent offerings. The scan is single-lookahead:
// a dropped slot is never used as the anchor for a further suppression.
func (f *Filterer) suppressContinuations(slots []Slot) []Slot {
	kept := make([]Slot, 0, len(slots))

	for i := 0; i < len(slots); i++ {
		current := slots[i]
		kept = append(kept, current)

		if i+1 >= len(slots) {
			break
		}

		next := slots[i+1]
		if next.Date == current.Date && next.Start.Equal(current.End) &&
			current.DurationMinutes > defaultDurationMinutes &&
			next.DurationMinutes == defaultDurationMinutes {
			i++
		}
	}

	return kept
}

// admit reports whether the slot lies fully inside the window. Offsets are
// minutes since the slot's own midnight in the reference zone, so a slot
// running to midnight evaluates as 1440 rather than wrapping to 0. A slot
// that starts inside the window but ends past it is rejected, not truncated.
func (f *Filterer) admit(slot Slot, window AdmissionWindow) bool {
	dayStart := time.Date(slot.Start.Year(), slot.Start.Month(), slot.Start.Day(),
		0, 0, 0, 0, slot.Start.Location())

	startOffset := int(slot.Start.Sub(dayStart).Minutes())
	endOffset := int(slot.End.Sub(dayStart).Minutes())

	return startOffset >= window.FromMinutes && endOffset <= window.ToMinutes
}
