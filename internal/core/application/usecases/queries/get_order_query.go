// Package queries contains read-only operations against the order store.
// Query handlers bypass the domain repositories and read projections straight
// from the database, following the CQRS split used by the command side.
package queries

import (
	"errors"
	"time"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full state of a single order, including the
// certified text and all confirmed page results.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	details, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s with %d pages\n", details.ID, details.Status, len(details.Pages))
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PageResultResponse is one confirmed reconstructed page.
type PageResultResponse struct {
	Sequence int
	URL      string
}

// GetOrderQueryResponse is the full read model of an order.
// Status fields carry their display strings, not internal codes.
type GetOrderQueryResponse struct {
	ID                kernel.UUID
	Status            string
	ProcessingStatus  string
	PaymentStatus     string
	SourceLanguage    string
	TargetLanguage    string
	ExtractedText     string
	ManualEdits       *string
	CertifiedText     string
	ProcessingError   string
	SourceDocumentRef string
	Pages             []PageResultResponse
	CreatedAt         time.Time
}
