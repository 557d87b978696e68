// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves a snapshot of all orders, optionally narrowed by
// a free-text search and a stage selector.
//
// Example:
//
//	query := NewListOrdersQuery("royal", "Casting")
//	handler := NewListOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	text  string
	stage string

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query to list orders. Both filters are
// optional: an empty text matches everything and an empty or "All" stage
// applies no stage constraint.
func NewListOrdersQuery(text, stage string) ListOrdersQuery {
	return ListOrdersQuery{
		text:  text,
		stage: stage,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Text returns the free-text search term.
func (q ListOrdersQuery) Text() string {
	return q.text
}

// Stage returns the stage selector.
func (q ListOrdersQuery) Stage() string {
	return q.stage
}

// OrderResponse represents one order in the listing read model. Enumerations
// are rendered as their wire strings.
type OrderResponse struct {
	ID             kernel.UUID
	OrderNo        string
	ClientName     string
	ClientPhone    string
	ClientEmail    string
	ProductName    string
	Material       string
	Purity         string
	Weight         decimal.Decimal
	Quantity       int
	Deadline       *time.Time
	Notes          string
	Stage          string
	Status         string
	AssignedWorker string
	CreatedAt      time.Time
	Version        int64
}
