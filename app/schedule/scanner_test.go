package schedule

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// scannerFixture wires a scanner against a fake upstream. Venue "alpha"
// returns three raw records for every requested date: a long slot, its exact
// duplicate, and a 30-minute continuation. Venue "beta" has no slots at all.
func scannerFixture(t *testing.T) (*Scanner, *Formatter) {
	t.Helper()

	loc := mustLoadMoscow(t)

	// Tomorrow 19:00 in the reference zone is always inside the search window
	// and admitted by both the weekday and the weekend default windows.
	tomorrow := time.Now().In(loc).AddDate(0, 0, 1)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 19, 0, 0, 0, loc)

	longFrom := start.UTC().Format(time.RFC3339)
	longTo := start.Add(time.Hour).UTC().Format(time.RFC3339)
	contFrom := longTo
	contTo := start.Add(90 * time.Minute).UTC().Format(time.RFC3339)

	payload := fmt.Sprintf(`{
		"byTrainer": {
			"NO_TRAINER": {
				"slots": [[
					{"timeFrom": %q, "timeTo": %q, "availableDuration": "PT1H", "price": {"from": 1500}},
					{"timeFrom": %q, "timeTo": %q, "availableDuration": "PT1H", "price": {"from": 1500}},
					{"timeFrom": %q, "timeTo": %q, "availableDuration": "PT30M", "price": {"from": 800}}
				]]
			}
		}
	}`, longFrom, longTo, longFrom, longTo, contFrom, contTo)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "venue-a") {
			w.Write([]byte(payload))
			return
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	writeVenueFile(t, dir, "alpha", "id: \"venue-a\"\nname: \"Альфа Арена\"\nsettings:\n  enabled: true\n")
	writeVenueFile(t, dir, "beta", "id: \"venue-b\"\nname: \"Бета Манеж\"\nsettings:\n  enabled: true\n")

	venues := NewVenueCache(dir)
	if err := venues.Run(); err != nil {
		t.Fatalf("Failed to load venue fixtures: %v", err)
	}

	client := NewClient(&http.Client{}, server.URL, "Slotwatch test", 5*time.Second)
	scanner := NewScanner(client, NewNormalizer(loc), NewFilterer(), venues, loc, 3)

	return scanner, NewFormatter(4096)
}

func TestScanner_Run_EndToEnd(t *testing.T) {
	scanner, formatter := scannerFixture(t)

	reports := scanner.Run(context.Background())

	if len(reports) != 2 {
		t.Fatalf("Expected reports for both venues, got %d", len(reports))
	}
	if reports[0].Key != "alpha" || reports[1].Key != "beta" {
		t.Fatalf("Expected reports ordered by venue key, got [%s, %s]", reports[0].Key, reports[1].Key)
	}

	alpha := reports[0]
	if alpha.Count != 1 {
		t.Fatalf("Expected duplicate and continuation collapsed to 1 slot, got %d", alpha.Count)
	}
	if alpha.Slots[0].Start.Hour() != 19 {
		t.Errorf("Expected surviving slot to start at 19:00, got %s", alpha.Slots[0].Start.Format("15:04"))
	}
	if alpha.Slots[0].DurationMinutes != 60 {
		t.Errorf("Expected the long slot to survive, got duration %d", alpha.Slots[0].DurationMinutes)
	}

	if reports[1].Count != 0 {
		t.Errorf("Expected zero slots for the empty venue, got %d", reports[1].Count)
	}

	blocks := formatter.Run(reports)
	text := strings.Join(blocks, "\n")

	if !strings.Contains(blocks[0], "Найдено слотов: 1") {
		t.Errorf("Expected announced total of 1, got %q", blocks[0])
	}
	if !strings.Contains(text, "Альфа Арена") {
		t.Error("Expected venue with slots in the report")
	}
	if strings.Contains(text, "Бета Манеж") {
		t.Error("Expected empty venue omitted from the report")
	}
	if got := strings.Count(text, "• "); got != 1 {
		t.Errorf("Expected exactly 1 slot line, got %d", got)
	}
}

func TestScanner_Run_NoEnabledVenues(t *testing.T) {
	loc := mustLoadMoscow(t)
	venues := NewVenueCache(t.TempDir())

	client := NewClient(&http.Client{}, "http://127.0.0.1:0", "Slotwatch test", time.Second)
	scanner := NewScanner(client, NewNormalizer(loc), NewFilterer(), venues, loc, 2)

	if reports := scanner.Run(context.Background()); len(reports) != 0 {
		t.Errorf("Expected no reports without venues, got %d", len(reports))
	}
}

func TestScanner_SearchDates(t *testing.T) {
	loc := mustLoadMoscow(t)
	scanner := NewScanner(nil, NewNormalizer(loc), NewFilterer(), NewVenueCache(t.TempDir()), loc, 1)

	// 2025-09-03 is a Wednesday: 3 days to Sunday plus the following full week
	now := time.Date(2025, 9, 3, 12, 0, 0, 0, loc)
	dates := scanner.searchDates(now)

	if len(dates) != 12 {
		t.Fatalf("Expected 12 dates (Wed through next Sunday), got %d", len(dates))
	}
	if dates[0] != "2025-09-03" {
		t.Errorf("Expected window to start today, got %s", dates[0])
	}
	if dates[len(dates)-1] != "2025-09-14" {
		t.Errorf("Expected window to end next Sunday, got %s", dates[len(dates)-1])
	}
}
