package commands

import (
	"context"
	"log/slog"

	"certify/internal/core/domain/model/order"
	"certify/internal/core/ports"
)

// ApplyReconstructionResultCommandHandler ingests engine callbacks.
// Page batches are merged idempotently: URLs already recorded on the order are
// skipped, new ones are appended in engine order. The read-modify-write cycle
// runs under optimistic concurrency and is replayed when two callbacks for the
// same order race each other.
type ApplyReconstructionResultCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

// NewApplyReconstructionResultCommandHandler creates a handler for engine callbacks.
func NewApplyReconstructionResultCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) ApplyReconstructionResultCommandHandler {
	return ApplyReconstructionResultCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "reconstruction-ingest"),
	}
}

// Handle merges a callback into the order.
// Duplicate deliveries, partial duplicates and late callbacks for completed
// orders all succeed without changing already-recorded results.
func (h *ApplyReconstructionResultCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyReconstructionResultCommand,
) error {
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
		callbackOrder, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		changed, err := h.apply(cmd, callbackOrder)
		if err != nil {
			return err
		}

		if !changed {
			// Nothing new in this delivery. Acknowledge without a write so the
			// engine stops retrying.
			return nil
		}

		if err = orderRepo.Update(ctx, callbackOrder); err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		publishTracked(h.notifier, uow)
		return nil
	})
}

func (h *ApplyReconstructionResultCommandHandler) apply(
	cmd ApplyReconstructionResultCommand,
	callbackOrder *order.Order,
) (bool, error) {
	if callbackOrder.Status() == order.StatusCompleted {
		// The document already shipped. The engine retried into a closed
		// order, acknowledge and drop the payload.
		h.logger.Info("dropping late callback for completed order",
			"orderId", cmd.OrderID().String())
		return false, nil
	}

	if !cmd.Succeeded() {
		if err := callbackOrder.MarkProcessingFailed(cmd.ErrorDetail()); err != nil {
			return false, err
		}

		h.logger.Warn("reconstruction failed",
			"orderId", cmd.OrderID().String(),
			"detail", cmd.ErrorDetail())
		return true, nil
	}

	added, err := callbackOrder.MergePageResults(cmd.PageURLs())
	if err != nil {
		return false, err
	}

	if added > 0 {
		h.logger.Info("merged reconstructed pages",
			"orderId", cmd.OrderID().String(),
			"added", added)
	}

	return added > 0, nil
}
