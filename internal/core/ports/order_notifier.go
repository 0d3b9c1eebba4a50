package ports

import "certify/internal/core/domain/model/order"

// OrderSnapshot is the live-status projection pushed to observers whenever an
// order changes. It is deliberately flat and string-typed: it crosses the
// process boundary to UI subscribers.
type OrderSnapshot struct {
	OrderID          string `json:"orderId"`
	Status           string `json:"status"`
	ProcessingStatus string `json:"processingStatus"`
	PaymentStatus    string `json:"paymentStatus"`
	PageCount        int    `json:"pageCount"`
	ProcessingError  string `json:"processingError,omitempty"`
}

// SnapshotOf projects an order aggregate into its observer view.
func SnapshotOf(o *order.Order) OrderSnapshot {
	return OrderSnapshot{
		OrderID:          o.ID().String(),
		Status:           o.Status().String(),
		ProcessingStatus: o.ProcessingStatus().String(),
		PaymentStatus:    o.PaymentStatus().String(),
		PageCount:        len(o.PageResults()),
		ProcessingError:  o.ProcessingError(),
	}
}

// OrderNotifier publishes order-change snapshots after a successful commit.
// Publishing never blocks the publisher: observers are UI conveniences, not
// consumers of record.
type OrderNotifier interface {
	Publish(snapshot OrderSnapshot)
}

// OrderSubscriber delivers snapshots for a single order id. The returned
// cancel function releases the subscription; the channel is closed afterwards.
type OrderSubscriber interface {
	Subscribe(orderID string) (<-chan OrderSnapshot, func())
}
