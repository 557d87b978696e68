package ports

import (
	"context"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"
)

// EvidenceRepository defines the persistence contract for completion evidence.
// Evidence rows are unique per (order, stage); writing the same pair again
// replaces the previous record, which tolerates upload retries.
type EvidenceRepository interface {
	// Add persists an evidence record, replacing any existing record for the
	// same (order, stage) pair.
	Add(ctx context.Context, evidence *order.Evidence) error

	// GetForOrder retrieves all evidence recorded for an order, in stage order.
	GetForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Evidence, error)

	// Exists reports whether evidence has been recorded for the given
	// (order, stage) pair.
	Exists(ctx context.Context, orderID kernel.UUID, stage order.Stage) (bool, error)

	// DeleteForStages removes the evidence records for the given stages of an
	// order. The QC rollback uses this so the rework tasks rematerialize.
	DeleteForStages(ctx context.Context, orderID kernel.UUID, stages []order.Stage) error
}
