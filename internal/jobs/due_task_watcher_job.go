package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"jewelflow/internal/core/application/usecases/queries"
	"jewelflow/internal/core/domain/model/task"
	"jewelflow/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DueTaskWatcherJob periodically scans the pending task list and pushes an
// alert for every high-priority task to the notification channel. Each
// (order, stage) pair alerts once per process lifetime; a task that advances
// and later reappears at another stage alerts again.
type DueTaskWatcherJob struct {
	handler   queries.ListPendingTasksQueryHandler
	publisher ports.TaskAlertPublisher
	cron      *cron.Cron
	logger    *slog.Logger
	alerted   map[string]struct{}
}

// NewDueTaskWatcherJob creates a job that watches for due and overdue tasks.
func NewDueTaskWatcherJob(
	handler queries.ListPendingTasksQueryHandler,
	publisher ports.TaskAlertPublisher,
	logger *slog.Logger,
) *DueTaskWatcherJob {
	return &DueTaskWatcherJob{
		handler:   handler,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "due_task_watcher_job"),
		alerted:   make(map[string]struct{}),
	}
}

// Start begins the due task watcher to run every minute.
func (j *DueTaskWatcherJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Due task watcher started (running every minute)")
	return nil
}

// Stop stops the due task watcher.
func (j *DueTaskWatcherJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Due task watcher stopped")
}

func (j *DueTaskWatcherJob) run() {
	ctx := context.Background()

	tasks, err := j.handler.Handle(ctx, queries.NewListPendingTasksQuery("", ""))
	if err != nil {
		j.logger.ErrorContext(ctx, "Due task scan failed", "error", err)
		return
	}

	for _, t := range tasks {
		if t.Priority != task.High.String() {
			continue
		}

		key := fmt.Sprintf("%s/%s", t.OrderID.String(), t.Stage)
		if _, done := j.alerted[key]; done {
			continue
		}

		alert := ports.DueTaskAlert{
			OrderID:     t.OrderID,
			OrderNo:     t.OrderNo,
			ProductName: t.ProductName,
			Stage:       t.Stage,
			Worker:      t.AssignedWorker,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
		}
		if err = j.publisher.PublishDueTask(ctx, alert); err != nil {
			j.logger.WarnContext(ctx, "Due task alert delivery failed",
				"orderNo", t.OrderNo,
				"stage", t.Stage,
				"error", err)
			continue
		}

		j.alerted[key] = struct{}{}
		j.logger.InfoContext(ctx, "Due task alert published",
			"orderNo", t.OrderNo,
			"stage", t.Stage)
	}
}
