package ports

import (
	"context"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// The order record is the system's one shared mutable resource: the ingestor,
// the dispatch coordinator, and operator commands may race on the same row.
// Update therefore performs an optimistic compare-and-set on the aggregate's
// version token, and callers retry their whole read-modify-write when it
// reports errs.ErrVersionConflict.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate iff the stored
	// version still matches the aggregate's restored version. A lost race
	// yields errs.ErrVersionConflict; a vanished row yields
	// errs.ErrObjectNotFound.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllAwaitingDispatch retrieves orders that are ready and paid but
	// not yet completed. Used by operator tooling to find dispatchable work.
	GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error)
}
