package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"certify/internal/core/domain/services"
	"certify/internal/core/ports"
)

// ErrOrderNotReady signals a dispatch attempt before the order has confirmed
// pages and payment.
var ErrOrderNotReady = errors.New("order is not ready for dispatch")

// fetchConcurrency caps parallel page image downloads per dispatch.
const fetchConcurrency = 4

// DispatchOrderCommandHandler coordinates the final delivery of an order:
// plan the document, fetch the reconstructed page images, assemble the
// certified PDF, hand it to the mail transport and only then commit the
// terminal "Completed" transition. A failure at any step before the commit
// leaves the order dispatchable and retryable.
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	planner    services.AssemblyPlanner
	fetcher    ports.PageFetcher
	assembler  ports.DocumentAssembler
	sender     ports.EmailSender
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

// NewDispatchOrderCommandHandler creates a handler for order dispatch.
func NewDispatchOrderCommandHandler(
	uowFactory OrderUoWFactory,
	planner services.AssemblyPlanner,
	fetcher ports.PageFetcher,
	assembler ports.DocumentAssembler,
	sender ports.EmailSender,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		fetcher:    fetcher,
		assembler:  assembler,
		sender:     sender,
		notifier:   notifier,
		logger:     logger.With("component", "dispatch"),
	}
}

// Handle dispatches the order.
// Returns ErrOrderNotReady when processing is not Ready, payment is missing,
// or the order was already completed.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	plan, err := h.planDispatch(ctx, cmd)
	if err != nil {
		return err
	}

	images, err := h.fetchImages(ctx, plan.ImageURLs)
	if err != nil {
		return err
	}

	document, err := h.assembler.Assemble(ctx, plan, images)
	if err != nil {
		return err
	}

	if err = h.sender.Send(ctx, ports.OutgoingMessage{
		To:             cmd.RecipientEmail(),
		Subject:        fmt.Sprintf("Your certified translation %s", plan.OrderID),
		Body:           fmt.Sprintf("Dear %s,\n\nplease find your certified translation attached.\n", cmd.RecipientName()),
		AttachmentName: plan.Filename,
		Attachment:     document,
	}); err != nil {
		return err
	}

	h.logger.Info("certified document sent",
		"orderId", plan.OrderID,
		"recipient", cmd.RecipientEmail(),
		"pages", len(images))

	return h.complete(ctx, cmd)
}

// planDispatch reads the order in a short transaction and builds the assembly
// plan. The readiness check here is advisory; the authoritative check happens
// again inside MarkDispatched before the commit.
func (h *DispatchOrderCommandHandler) planDispatch(
	ctx context.Context,
	cmd DispatchOrderCommand,
) (services.AssemblyPlan, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.AssemblyPlan{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	dispatched, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return services.AssemblyPlan{}, err
	}

	if !dispatched.CanDispatch() {
		return services.AssemblyPlan{}, ErrOrderNotReady
	}

	return h.planner.PlanDispatch(dispatched, cmd.CertifiedText(), cmd.RecipientName())
}

// fetchImages downloads all page images concurrently, preserving plan order.
func (h *DispatchOrderCommandHandler) fetchImages(ctx context.Context, urls []string) ([]ports.PageImage, error) {
	images := make([]ports.PageImage, len(urls))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(fetchConcurrency)

	for i, url := range urls {
		group.Go(func() error {
			image, err := h.fetcher.Fetch(groupCtx, url)
			if err != nil {
				return err
			}

			images[i] = image
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return images, nil
}

// complete commits the terminal transition after the transport accepted the
// message.
func (h *DispatchOrderCommandHandler) complete(ctx context.Context, cmd DispatchOrderCommand) error {
	return withConflictRetry(ctx, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		orderRepo := uow.OrderRepository()
		dispatched, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if err = dispatched.MarkDispatched(); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, dispatched); err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		publishTracked(h.notifier, uow)
		return nil
	})
}
