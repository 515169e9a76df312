package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ffcteam/slotwatch/app/schedule"
)

// ReloadVenuesTask re-reads the venue configuration directory so edited or
// added venue files take effect without a restart.
type ReloadVenuesTask struct {
	Task
	venues *schedule.VenueCache
}

func NewReloadVenuesTask(venues *schedule.VenueCache) *ReloadVenuesTask {
	return &ReloadVenuesTask{
		Task:   NewTask(TaskTypeReloadVenues),
		venues: venues,
	}
}

func (t *ReloadVenuesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.venues.Run(); err != nil {
		return fmt.Errorf("failed to reload venue configurations: %w", err)
	}

	slog.Info("Task completed",
		"type", "ReloadVenues",
		"duration", t.GetDuration(),
		"venues", t.venues.GetConfigCount())

	return nil
}
