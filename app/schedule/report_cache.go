package schedule

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ScanFunc produces a fresh multi-venue scan result.
type ScanFunc func(ctx context.Context) []VenueReport

// ReportCache holds at most one scan result. The whole multi-venue result is
// a single atomic cache unit; there is no per-venue invalidation.
type ReportCache struct {
	scan ScanFunc
	ttl  time.Duration

	mu         sync.Mutex
	reports    []VenueReport
	computedAt time.Time
}

func NewReportCache(scan ScanFunc, ttl time.Duration) *ReportCache {
	return &ReportCache{
		scan: scan,
		ttl:  ttl,
	}
}

// Get returns the cached result, refreshing it first when the entry is older
// than the TTL. The mutex is held across the refresh, so concurrent callers
// trigger at most one upstream scan per expiry and all receive that result.
func (rc *ReportCache) Get(ctx context.Context) ([]VenueReport, time.Time) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if !rc.computedAt.IsZero() && time.Since(rc.computedAt) < rc.ttl {
		return rc.reports, rc.computedAt
	}

	rc.refreshLocked(ctx)
	return rc.reports, rc.computedAt
}

// Refresh recomputes the entry regardless of its age.
func (rc *ReportCache) Refresh(ctx context.Context) []VenueReport {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.refreshLocked(ctx)
	return rc.reports
}

func (rc *ReportCache) refreshLocked(ctx context.Context) {
	started := time.Now()

	rc.reports = rc.scan(ctx)
	rc.computedAt = time.Now()

	total := 0
	for _, report := range rc.reports {
		total += report.Count
	}

	slog.Info("Report cache refreshed", "venues", len(rc.reports),
		"slots", total, "duration", time.Since(started))
}
