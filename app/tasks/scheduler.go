package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ffcteam/slotwatch/app/cfg"
	"github.com/ffcteam/slotwatch/app/schedule"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	cache       *schedule.ReportCache
	venues      *schedule.VenueCache
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(cache *schedule.ReportCache, venues *schedule.VenueCache) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		cache:       cache,
		venues:      venues,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueWarmupTask()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	reloadTask := NewReloadVenuesTask(s.venues)
	if err := s.EnqueueTask(reloadTask); err != nil {
		slog.Warn("Failed to enqueue ReloadVenuesTask", "error", err)
	}

	s.enqueueWarmupTask()
}

func (s *Scheduler) enqueueWarmupTask() {
	refreshTask := NewRefreshReportTask(s.cache)
	if err := s.EnqueueTask(refreshTask); err != nil {
		slog.Warn("Failed to enqueue RefreshReportTask", "error", err)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)
	if err == nil {
		return
	}

	slog.Error("Worker task execution failed", "worker_id", workerID,
		"type", string(task.GetType()), "id", task.GetID(),
		"retry_count", task.GetRetryCount(), "error", err)

	if !task.CanRetry() {
		slog.Error("Task failed after maximum retries",
			"type", string(task.GetType()), "id", task.GetID(),
			"retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(),
			"last_error", err)
		return
	}

	task.IncrementRetryCount()
	retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
	if retryDelay > 30*time.Second {
		retryDelay = 30 * time.Second
	}

	slog.Warn("Task retry scheduled", "type", string(task.GetType()),
		"retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(),
		"delay", retryDelay.String())

	go func() {
		time.Sleep(retryDelay)
		select {
		case <-s.ctx.Done():
			slog.Debug("Scheduler stopped, skipping task retry",
				"type", string(task.GetType()), "id", task.GetID())
			return
		default:
			if retryErr := s.EnqueueTask(task); retryErr != nil {
				slog.Error("Failed to re-enqueue task for retry",
					"type", string(task.GetType()), "id", task.GetID(),
					"retry_count", task.GetRetryCount(), "error", retryErr)
			}
		}
	}()
}
