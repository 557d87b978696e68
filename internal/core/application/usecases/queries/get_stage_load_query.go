package queries

import (
	"errors"

	"jewelflow/internal/pkg/guard"
)

var ErrGetStageLoadQueryIsNotConstructed = errors.New(
	"GetStageLoadQuery must be created via NewGetStageLoadQuery constructor",
)

// GetStageLoadQuery retrieves the per-stage count of active orders for the
// workshop dashboard.
type GetStageLoadQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStageLoadQuery creates a query for the stage load dashboard.
// This is a parameterless query covering every workable stage.
func NewGetStageLoadQuery() GetStageLoadQuery {
	return GetStageLoadQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStageLoadQueryIsNotConstructed if validation fails.
func (q GetStageLoadQuery) Validate() error {
	return q.guard.Validate(ErrGetStageLoadQueryIsNotConstructed)
}

// StageLoadResponse represents the number of active orders currently at one
// production stage. Every workable stage appears in the result, including
// stages with zero orders.
type StageLoadResponse struct {
	Stage string
	Count int
}
