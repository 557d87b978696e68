package queries

import (
	"context"

	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves the order listing from the database and
// narrows it with the domain order filter. Filtering happens in memory over
// the fetched snapshot, keeping the matching rules in one place.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders are returned newest first; the text and
// stage constraints of the query are both applied.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*order.Order, 0)
	for rows.Next() {
		o, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	filtered := services.NewOrderFilter(query.Text(), query.Stage()).Apply(orders)

	responses := make([]OrderResponse, 0, len(filtered))
	for _, o := range filtered {
		responses = append(responses, toOrderResponse(o))
	}
	return responses, nil
}
