package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background processing: keeping the
// report cache warm and picking up edited venue configurations.
// Example usage:
//
//	scheduler := NewScheduler(reportCache, venueCache)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
