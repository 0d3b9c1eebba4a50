package commands

import (
	"context"
	"errors"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/core/domain/model/order"
	"certify/internal/core/ports"
	"certify/internal/pkg/errs"
)

// TriggerReconstructionCommandHandler starts document reconstruction for an order.
// The handshake with the reconstruction engine happens before the status flip
// is committed: if the engine rejects the request, the order stays triggerable.
type TriggerReconstructionCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     ports.ReconstructionEngine
	notifier   ports.OrderNotifier
}

// NewTriggerReconstructionCommandHandler creates a handler for reconstruction triggers.
func NewTriggerReconstructionCommandHandler(
	uowFactory OrderUoWFactory,
	engine ports.ReconstructionEngine,
	notifier ports.OrderNotifier,
) TriggerReconstructionCommandHandler {
	return TriggerReconstructionCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		notifier:   notifier,
	}
}

// Handle validates that the order can be (re)processed, asks the engine to
// start, then commits the "Processing" flip. Orders whose reconstruction is
// already in progress or ready fail with an invalid transition error.
func (h *TriggerReconstructionCommandHandler) Handle(ctx context.Context, cmd TriggerReconstructionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.startEngine(ctx, cmd.OrderID()); err != nil {
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
		triggered, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if err = triggered.StartProcessing(); err != nil {
			// The engine already accepted the request. A concurrent trigger
			// winning the race leaves the order in the state this command
			// wanted anyway, so swallow the duplicate.
			if errors.Is(err, errs.ErrInvalidTransition) &&
				triggered.ProcessingStatus() == order.ProcessingInProgress {
				return nil
			}

			return err
		}

		if err = orderRepo.Update(ctx, triggered); err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		publishTracked(h.notifier, uow)
		return nil
	})
}

// startEngine reads the order, checks triggerability and performs the engine
// handshake outside of any write transaction.
func (h *TriggerReconstructionCommandHandler) startEngine(
	ctx context.Context,
	orderID kernel.UUID,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	triggered, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	if !triggered.CanTrigger() {
		return errs.NewInvalidTransitionError(
			triggered.ProcessingStatus().String(),
			order.ProcessingInProgress.String(),
		)
	}

	return h.engine.Start(ctx, ports.ReconstructionRequest{
		OrderID:           triggered.ID().String(),
		SourceDocumentRef: triggered.SourceDocumentRef(),
		SourceLanguage:    triggered.SourceLanguage(),
		TargetLanguage:    triggered.TargetLanguage(),
	})
}
