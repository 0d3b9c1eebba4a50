package commands

import (
	"errors"
	"slices"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/pkg/errs"
	"certify/internal/pkg/guard"
)

var ErrApplyReconstructionResultCommandIsNotConstructed = errors.New(
	"ApplyReconstructionResultCommand must be created via NewApplyReconstructionResultCommand constructor",
)

// ApplyReconstructionResultCommand carries one engine callback: either a batch
// of reconstructed page URLs or a failure report. The engine delivers callbacks
// at least once, so the same command may be handled multiple times.
type ApplyReconstructionResultCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	succeeded   bool
	pageURLs    []string
	errorDetail string

	guard guard.ConstructorGuard
}

// NewApplyReconstructionResultCommand creates a command from an engine callback.
// Success callbacks must not carry blank page URLs; an empty batch is valid and
// handled as an acknowledged no-op.
func NewApplyReconstructionResultCommand(
	orderID kernel.UUID,
	succeeded bool,
	pageURLs []string,
	errorDetail string,
) (ApplyReconstructionResultCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ApplyReconstructionResultCommand{}, err
	}

	if succeeded && slices.Contains(pageURLs, "") {
		return ApplyReconstructionResultCommand{}, errs.NewValueIsRequiredError("pageURLs")
	}

	return ApplyReconstructionResultCommand{
		orderID:     orderID,
		succeeded:   succeeded,
		pageURLs:    slices.Clone(pageURLs),
		errorDetail: errorDetail,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyReconstructionResultCommand) Validate() error {
	return c.guard.Validate(ErrApplyReconstructionResultCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c ApplyReconstructionResultCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Succeeded reports whether the callback carries page results or a failure.
func (c ApplyReconstructionResultCommand) Succeeded() bool {
	return c.succeeded
}

// PageURLs returns the reconstructed page image URLs, in engine order.
func (c ApplyReconstructionResultCommand) PageURLs() []string {
	return slices.Clone(c.pageURLs)
}

// ErrorDetail returns the engine's failure description, if any.
func (c ApplyReconstructionResultCommand) ErrorDetail() string {
	return c.errorDetail
}
