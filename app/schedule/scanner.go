package schedule

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Scanner orchestrates one full scan: fetch every (venue, date) pair in the
// search window, normalize, then run the filter pipeline per venue.
type Scanner struct {
	client     *Client
	normalizer *Normalizer
	filterer   *Filterer
	venues     *VenueCache
	loc        *time.Location
	workers    int
}

func NewScanner(client *Client, normalizer *Normalizer, filterer *Filterer,
	venues *VenueCache, loc *time.Location, workers int) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		client:     client,
		normalizer: normalizer,
		filterer:   filterer,
		venues:     venues,
		loc:        loc,
		workers:    workers,
	}
}

type fetchJob struct {
	venueKey string
	venueID  string
	date     string
}

type fetchResult struct {
	venueKey string
	raw      []RawSlot
}

// Run scans all enabled venues and returns the filtered per-venue results
// ordered by venue key. Fetches fan out over a bounded worker pool; each
// call is failure-isolated, so a dead upstream only produces empty venues.
func (s *Scanner) Run(ctx context.Context) []VenueReport {
	configs := s.venues.GetEnabledConfigs()
	if len(configs) == 0 {
		slog.Debug("No enabled venue configurations found")
		return nil
	}

	keys := make([]string, 0, len(configs))
	for key := range configs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	dates := s.searchDates(time.Now().In(s.loc))

	jobs := make(chan fetchJob)
	results := make(chan fetchResult)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- fetchResult{
					venueKey: job.venueKey,
					raw:      s.client.FetchDay(ctx, job.venueID, job.date),
				}
			}
		}()
	}

	go func() {
		for _, key := range keys {
			for _, date := range dates {
				jobs <- fetchJob{venueKey: key, venueID: configs[key].ID, date: date}
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	accumulated := make(map[string][]Slot, len(configs))
	for result := range results {
		for _, raw := range result.raw {
			if slot, ok := s.normalizer.Run(raw); ok {
				accumulated[result.venueKey] = append(accumulated[result.venueKey], slot)
			}
		}
	}

	reports := make([]VenueReport, 0, len(keys))
	for _, key := range keys {
		venueConfig := configs[key]
		filtered := s.filterer.Run(accumulated[key], venueConfig)

		reports = append(reports, VenueReport{
			Key:   key,
			Name:  venueConfig.Name,
			Slots: filtered,
			Count: len(filtered),
		})

		slog.Debug("Venue scan completed", "venue", key,
			"raw", len(accumulated[key]), "admitted", len(filtered))
	}

	return reports
}

// searchDates lists the calendar dates from today through the Sunday of next
// week, in the reference zone.
func (s *Scanner) searchDates(now time.Time) []string {
	daysToSunday := 6 - mondayWeekday(now)
	totalDays := daysToSunday + 7

	dates := make([]string, 0, totalDays+1)
	for offset := 0; offset <= totalDays; offset++ {
		dates = append(dates, now.AddDate(0, 0, offset).Format("2006-01-02"))
	}
	return dates
}
