// Package ports defines the outbound interfaces of the core: repositories,
// the unit of work, evidence storage, and event publishing. These interfaces
// establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update is a compare-and-swap on the aggregate version: it only writes when
// the stored version still equals the version the aggregate was loaded with,
// and returns errs.VersionConflictError when another actor won the race.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, conditional on
	// the stored version matching the aggregate's persisted version.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order, newest first. The listing and the task
	// derivation filter this snapshot in memory.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllActive retrieves the orders still in the production workflow:
	// neither completed nor cancelled, newest first.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// NextOrderNo allocates the next sequence number for the given year and
	// returns the formatted order number, e.g. "JF-2026-042". Allocation
	// happens inside the surrounding transaction.
	NextOrderNo(ctx context.Context, year int) (string, error)
}
