package queries

import (
	"errors"
	"time"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/pkg/guard"
)

var ErrGetAwaitingDispatchQueryIsNotConstructed = errors.New(
	"GetAwaitingDispatchQuery must be created via NewGetAwaitingDispatchQuery constructor",
)

// GetAwaitingDispatchQuery retrieves all orders that are ready to be
// dispatched: reconstruction is ready, payment is confirmed and the certified
// document has not been sent yet.
//
// Example:
//
//	query := NewGetAwaitingDispatchQuery()
//	handler := NewGetAwaitingDispatchQueryHandler(db)
//
//	awaiting, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list dispatchable orders: %w", err)
//	}
//	fmt.Printf("%d orders waiting for dispatch\n", len(awaiting))
type GetAwaitingDispatchQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAwaitingDispatchQuery creates a query for dispatchable orders.
// This is a parameterless query.
func NewGetAwaitingDispatchQuery() GetAwaitingDispatchQuery {
	return GetAwaitingDispatchQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAwaitingDispatchQuery) Validate() error {
	return q.guard.Validate(ErrGetAwaitingDispatchQueryIsNotConstructed)
}

// GetAwaitingDispatchQueryResponse is one dispatchable order row.
type GetAwaitingDispatchQueryResponse struct {
	ID             kernel.UUID
	SourceLanguage string
	TargetLanguage string
	PageCount      int
	CreatedAt      time.Time
}
