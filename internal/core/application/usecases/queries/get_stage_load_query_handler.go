package queries

import (
	"context"

	"jewelflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetStageLoadQueryHandler computes how many active orders sit at each
// production stage. Completed and cancelled orders are excluded.
type GetStageLoadQueryHandler struct {
	db *gorm.DB
}

// NewGetStageLoadQueryHandler creates a handler for stage load queries.
// Requires a GORM database connection for query execution.
func NewGetStageLoadQueryHandler(db *gorm.DB) GetStageLoadQueryHandler {
	return GetStageLoadQueryHandler{db: db}
}

// Handle executes the query. The response covers every workable stage in
// sequence order, with zero counts for empty stages.
func (h GetStageLoadQueryHandler) Handle(
	ctx context.Context,
	query GetStageLoadQuery,
) ([]StageLoadResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT current_stage, COUNT(*)
		FROM orders
		WHERE status NOT IN (?, ?)
		  AND current_stage != ?
		GROUP BY current_stage
	`, order.Completed, order.Cancelled, order.Terminal).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[order.Stage]int)
	for rows.Next() {
		var stage, count int
		if err = rows.Scan(&stage, &count); err != nil {
			return nil, err
		}
		counts[order.Stage(stage)] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	responses := make([]StageLoadResponse, 0)
	for stage := order.FirstStage(); !stage.IsTerminal(); {
		responses = append(responses, StageLoadResponse{
			Stage: stage.String(),
			Count: counts[stage],
		})

		next, nextErr := stage.Next()
		if nextErr != nil {
			return nil, nextErr
		}
		stage = next
	}

	return responses, nil
}
