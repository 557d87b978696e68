package jobs

import (
	"fmt"
	"log/slog"

	"jewelflow/internal/core/application/usecases/queries"
	"jewelflow/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dueTaskWatcherJob *DueTaskWatcherJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	pendingTasksHandler queries.ListPendingTasksQueryHandler,
	alertPublisher ports.TaskAlertPublisher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dueTaskWatcherJob: NewDueTaskWatcherJob(pendingTasksHandler, alertPublisher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dueTaskWatcherJob.Start(); err != nil {
		return fmt.Errorf("failed to start due task watcher: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dueTaskWatcherJob.Stop()
}
