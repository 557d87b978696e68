package queries

import (
	"context"
	"sort"
	"time"

	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/core/domain/model/task"

	"gorm.io/gorm"
)

// ListPendingTasksQueryHandler derives the pending task list from active
// orders whose current stage has no completion evidence yet. Advancement
// records evidence in the same transaction, so "current stage without
// evidence" is exactly the set of stages still waiting for work; after a QC
// rollback the cleared evidence makes the rework stages reappear here.
type ListPendingTasksQueryHandler struct {
	db         *gorm.DB
	thresholds task.Thresholds
}

// NewListPendingTasksQueryHandler creates a handler for pending task queries.
// Requires a GORM database connection and the urgency thresholds used to
// rank tasks by due-date proximity.
func NewListPendingTasksQueryHandler(db *gorm.DB, thresholds task.Thresholds) ListPendingTasksQueryHandler {
	return ListPendingTasksQueryHandler{
		db:         db,
		thresholds: thresholds,
	}
}

// Handle executes the query. Tasks are ordered most urgent first. The stage
// filter matches by display name; the worker filter matches the claim holder.
func (h ListPendingTasksQueryHandler) Handle(
	ctx context.Context,
	query ListPendingTasksQuery,
) ([]TaskResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders o
		WHERE status NOT IN (?, ?)
		  AND current_stage != ?
		  AND NOT EXISTS (
			SELECT 1 FROM evidences e
			WHERE e.order_id = o.id AND e.stage = o.current_stage
		  )
		ORDER BY created_at
	`, order.Completed, order.Cancelled, order.Terminal).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	tasks := make([]*task.Task, 0)
	for rows.Next() {
		o, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		t, taskErr := task.FromOrder(o, now, h.thresholds)
		if taskErr != nil {
			return nil, taskErr
		}

		if !matchesTaskFilters(t, query) {
			continue
		}
		tasks = append(tasks, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].MoreUrgentThan(tasks[j])
	})

	responses := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, TaskResponse{
			OrderID:        t.OrderID(),
			OrderNo:        t.OrderNo(),
			ProductName:    t.ProductName(),
			ClientName:     t.ClientName(),
			MaterialLabel:  t.MaterialLabel(),
			Stage:          t.Stage().String(),
			AssignedWorker: t.AssignedWorker(),
			Priority:       t.Priority().String(),
			DueDate:        t.DueDate(),
		})
	}
	return responses, nil
}

func matchesTaskFilters(t *task.Task, query ListPendingTasksQuery) bool {
	if query.Stage() != "" && t.Stage().String() != query.Stage() {
		return false
	}
	if query.Worker() != "" && t.AssignedWorker() != query.Worker() {
		return false
	}
	return true
}
