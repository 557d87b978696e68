package task

import (
	"fmt"
	"time"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/pkg/errs"
)

// Task is the unit of work an artisan sees: the current stage of an active
// order, enriched with the order context needed to work on it. Tasks are
// derived, never stored; an order at a workable stage materializes exactly
// one task, and completing it makes the next stage's task appear.
type Task struct {
	orderID        kernel.UUID
	orderNo        string
	productName    string
	clientName     string
	materialLabel  string
	stage          order.Stage
	assignedWorker string
	priority       Priority
	dueDate        *time.Time
}

// FromOrder derives the current task of an active order. The priority is
// computed from the order's deadline relative to now using the given
// thresholds.
//
// Returns an error when the order is terminal, completed, or cancelled:
// such orders carry no workable task.
func FromOrder(o *order.Order, now time.Time, thresholds Thresholds) (*Task, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Stage().IsTerminal() || !o.IsActive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("order %s has no workable task", o.OrderNo()))
	}

	return &Task{
		orderID:        o.ID(),
		orderNo:        o.OrderNo(),
		productName:    o.ProductName(),
		clientName:     o.ClientName(),
		materialLabel:  materialLabel(o),
		stage:          o.Stage(),
		assignedWorker: o.AssignedWorker(),
		priority:       thresholds.PriorityFor(o.Deadline(), now),
		dueDate:        o.Deadline(),
	}, nil
}

// materialLabel renders the display label, e.g. "Gold 22K" or "Silver".
func materialLabel(o *order.Order) string {
	if o.Purity() == order.PurityNone {
		return o.Material().String()
	}
	return fmt.Sprintf("%s %s", o.Material(), o.Purity())
}

// OrderID returns the id of the order the task belongs to.
func (t *Task) OrderID() kernel.UUID {
	return t.orderID
}

// OrderNo returns the human-readable order number.
func (t *Task) OrderNo() string {
	return t.orderNo
}

// ProductName returns the artifact's product name.
func (t *Task) ProductName() string {
	return t.productName
}

// ClientName returns the client's name.
func (t *Task) ClientName() string {
	return t.clientName
}

// MaterialLabel returns the display label for the artifact's material,
// including the purity grade for gold.
func (t *Task) MaterialLabel() string {
	return t.materialLabel
}

// Stage returns the production stage the task belongs to.
func (t *Task) Stage() order.Stage {
	return t.stage
}

// AssignedWorker returns the worker holding the task, empty when unclaimed.
func (t *Task) AssignedWorker() string {
	return t.assignedWorker
}

// IsClaimed reports whether a worker currently holds the task.
func (t *Task) IsClaimed() bool {
	return t.assignedWorker != ""
}

// Priority returns the task's urgency ranking.
func (t *Task) Priority() Priority {
	return t.priority
}

// DueDate returns the order's deadline, nil when none was given.
func (t *Task) DueDate() *time.Time {
	return t.dueDate
}

// MoreUrgentThan orders tasks for worker queues: higher priority first,
// earlier due date breaking ties. Tasks without a due date sort last within
// their priority band.
func (t *Task) MoreUrgentThan(other *Task) bool {
	if t.priority != other.priority {
		return t.priority > other.priority
	}
	if t.dueDate == nil {
		return false
	}
	if other.dueDate == nil {
		return true
	}
	return t.dueDate.Before(*other.dueDate)
}
