// Package jobs provides scheduled background tasks for the workshop tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. DueTaskWatcherJob - Runs every minute to push alerts for pending tasks
// whose deadline is imminent or already missed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(pendingTasksHandler, alertPublisher, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Scan failures are logged and retried on the next tick
// - Alert delivery failures are logged; the alert is retried on the next tick
// - Failed job starts abort application startup
package jobs
