package schedule

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// defaultDurationMinutes is assumed whenever the upstream duration token is
// absent, malformed, or zero.
const defaultDurationMinutes = 30

type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	return &Normalizer{loc: loc}
}

// Run converts a raw upstream record into a canonical Slot. The second
// return value is false when the record is unusable and must be skipped;
// a skip never aborts the surrounding scan.
func (n *Normalizer) Run(raw RawSlot) (Slot, bool) {
	start, ok := n.parseTimestamp(raw.TimeFrom)
	if !ok {
		slog.Debug("Skipping slot with unparseable start", "time_from", raw.TimeFrom)
		return Slot{}, false
	}

	end, ok := n.parseTimestamp(raw.TimeTo)
	if !ok {
		slog.Debug("Skipping slot with unparseable end", "time_to", raw.TimeTo)
		return Slot{}, false
	}

	if !start.Before(end) {
		slog.Debug("Skipping slot with inverted interval", "time_from", raw.TimeFrom, "time_to", raw.TimeTo)
		return Slot{}, false
	}

	price := raw.Price.From
	if price < 0 {
		price = 0
	}

	return Slot{
		Start:           start,
		End:             end,
		Date:            start.Format("2006-01-02"),
		Weekday:         mondayWeekday(start),
		DurationMinutes: ParseDuration(raw.AvailableDuration),
		Room:            raw.RoomName,
		Price:           price,
		DedupKey:        start.Format("200601021504"),
	}, true
}

// parseTimestamp accepts RFC 3339 timestamps (offset or Z qualified) and the
// bare upstream form without an offset, which is UTC wall clock. The result
// is converted to the reference zone; all downstream date and minute-of-day
// arithmetic happens there.
func (n *Normalizer) parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(n.loc), true
	}

	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.UTC); err == nil {
		return t.In(n.loc), true
	}

	return time.Time{}, false
}

// mondayWeekday maps time.Weekday (Sunday-based) to a Monday-based index.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseDuration converts an ISO-8601 duration token such as "PT1H30M" into
// whole minutes. Only hour and minute designators occur upstream; anything
// unusable falls back to the default of 30.
func ParseDuration(token string) int {
	rest, found := strings.CutPrefix(token, "PT")
	if !found {
		return defaultDurationMinutes
	}

	minutes := 0

	if hours, tail, ok := strings.Cut(rest, "H"); ok {
		parsed, err := strconv.Atoi(hours)
		if err != nil {
			return defaultDurationMinutes
		}
		minutes = parsed * 60
		rest = tail
	}

	if mins, _, ok := strings.Cut(rest, "M"); ok && mins != "" {
		parsed, err := strconv.Atoi(mins)
		if err != nil {
			return defaultDurationMinutes
		}
		minutes += parsed
	}

	if minutes <= 0 {
		return defaultDurationMinutes
	}

	return minutes
}
