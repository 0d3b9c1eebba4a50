package commands

import (
	"context"

	"certify/internal/core/ports"
)

// MarkOrderPaidCommandHandler moves an order from "Pending" to "Paid".
// The read-modify-write cycle is retried on optimistic concurrency conflicts.
type MarkOrderPaidCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewMarkOrderPaidCommandHandler creates a handler for payment confirmations.
func NewMarkOrderPaidCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
) MarkOrderPaidCommandHandler {
	return MarkOrderPaidCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the payment confirmation.
// Confirming payment twice fails with an invalid transition error.
func (h *MarkOrderPaidCommandHandler) Handle(ctx context.Context, cmd MarkOrderPaidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		orderRepo := uow.OrderRepository()
		paidOrder, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if err = paidOrder.MarkPaid(); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, paidOrder); err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		publishTracked(h.notifier, uow)
		return nil
	})
}
