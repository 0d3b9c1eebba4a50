// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"errors"

	"certify/internal/core/domain/model/order"
	"certify/internal/core/ports"
	"certify/internal/pkg/errs"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	// TrackedOrders exposes the aggregates touched in the transaction so handlers
	// can publish snapshots after a successful commit.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		TrackedOrders() []*order.Order
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// maxConflictRetries bounds how often a handler re-runs its read-modify-write
// cycle after losing an optimistic concurrency race.
const maxConflictRetries = 5

// withConflictRetry runs fn until it succeeds, fails with a non-conflict error,
// or exhausts maxConflictRetries attempts. Each attempt re-reads the aggregate,
// so a lost version race is resolved by replaying the whole cycle.
func withConflictRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = fn(ctx)
		if err == nil || !errors.Is(err, errs.ErrVersionConflict) {
			return err
		}
	}

	return err
}

// publishTracked emits a snapshot for every aggregate the unit of work touched.
// Must only be called after a successful commit.
func publishTracked(notifier ports.OrderNotifier, uow OrderUoW) {
	if notifier == nil {
		return
	}

	for _, o := range uow.TrackedOrders() {
		notifier.Publish(ports.SnapshotOf(o))
	}
}
