package tasks

import (
	"context"
	"log/slog"

	"github.com/ffcteam/slotwatch/app/schedule"
)

// RefreshReportTask keeps the report cache warm so that transport reads are
// served without waiting on an upstream scan. Cache.Get only triggers a real
// scan when the entry has gone stale.
type RefreshReportTask struct {
	Task
	cache *schedule.ReportCache
}

func NewRefreshReportTask(cache *schedule.ReportCache) *RefreshReportTask {
	return &RefreshReportTask{
		Task:  NewTask(TaskTypeRefreshReport),
		cache: cache,
	}
}

func (t *RefreshReportTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	reports, _ := t.cache.Get(ctx)

	total := 0
	for _, report := range reports {
		total += report.Count
	}

	slog.Info("Task completed",
		"type", "RefreshReport",
		"duration", t.GetDuration(),
		"venues", len(reports),
		"slots", total)

	return nil
}
