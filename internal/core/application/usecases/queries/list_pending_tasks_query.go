package queries

import (
	"errors"
	"time"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/pkg/guard"
)

var ErrListPendingTasksQueryIsNotConstructed = errors.New(
	"ListPendingTasksQuery must be created via NewListPendingTasksQuery constructor",
)

// ListPendingTasksQuery retrieves the open tasks of the workshop: the current
// stages of active orders that still lack completion evidence. Optional
// filters narrow the result to one stage or one worker's claims.
//
// Example:
//
//	query := NewListPendingTasksQuery("Casting", "")
//	handler := NewListPendingTasksQueryHandler(db, task.DefaultThresholds())
//	tasks, err := handler.Handle(ctx, query)
type ListPendingTasksQuery struct {
	stage  string
	worker string

	guard guard.ConstructorGuard
}

// NewListPendingTasksQuery creates a query to list pending tasks. Both
// filters are optional; empty values apply no constraint.
func NewListPendingTasksQuery(stage, worker string) ListPendingTasksQuery {
	return ListPendingTasksQuery{
		stage:  stage,
		worker: worker,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListPendingTasksQueryIsNotConstructed if validation fails.
func (q ListPendingTasksQuery) Validate() error {
	return q.guard.Validate(ErrListPendingTasksQueryIsNotConstructed)
}

// Stage returns the stage filter.
func (q ListPendingTasksQuery) Stage() string {
	return q.stage
}

// Worker returns the worker filter.
func (q ListPendingTasksQuery) Worker() string {
	return q.worker
}

// TaskResponse represents one pending task in the read model, ordered by
// urgency: highest priority first, earlier due date breaking ties.
type TaskResponse struct {
	OrderID        kernel.UUID
	OrderNo        string
	ProductName    string
	ClientName     string
	MaterialLabel  string
	Stage          string
	AssignedWorker string
	Priority       string
	DueDate        *time.Time
}
