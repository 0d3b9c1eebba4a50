package commands

import (
	"context"

	"certify/internal/core/ports"
)

// SetManualEditsCommandHandler records operator revisions of the certified text.
type SetManualEditsCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewSetManualEditsCommandHandler creates a handler for certified text revisions.
func NewSetManualEditsCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
) SetManualEditsCommandHandler {
	return SetManualEditsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle stores the revised text on the order.
// Revisions of completed orders are rejected with an invalid transition error.
func (h *SetManualEditsCommandHandler) Handle(ctx context.Context, cmd SetManualEditsCommand) error {
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
		editedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if err = editedOrder.SetManualEdits(cmd.ManualEdits()); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, editedOrder); err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		publishTracked(h.notifier, uow)
		return nil
	})
}
