package ports

import (
	"context"
	"time"

	"jewelflow/internal/core/domain/model/kernel"
)

// DueTaskAlert describes a pending task whose deadline is imminent or missed.
type DueTaskAlert struct {
	OrderID     kernel.UUID
	OrderNo     string
	ProductName string
	Stage       string
	Worker      string
	Priority    string
	DueDate     *time.Time
}

// TaskAlertPublisher defines the contract for pushing due-task alerts to the
// notification channel. Like the event publisher, delivery is best effort.
type TaskAlertPublisher interface {
	// PublishDueTask delivers a due-task alert.
	PublishDueTask(ctx context.Context, alert DueTaskAlert) error
}
