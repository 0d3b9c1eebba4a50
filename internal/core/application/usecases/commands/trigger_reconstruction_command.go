package commands

import (
	"errors"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/pkg/guard"
)

var ErrTriggerReconstructionCommandIsNotConstructed = errors.New(
	"TriggerReconstructionCommand must be created via NewTriggerReconstructionCommand constructor",
)

// TriggerReconstructionCommand represents a request to start document
// reconstruction for an order.
type TriggerReconstructionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTriggerReconstructionCommand creates a command to start reconstruction.
func NewTriggerReconstructionCommand(orderID kernel.UUID) (TriggerReconstructionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TriggerReconstructionCommand{}, err
	}

	return TriggerReconstructionCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TriggerReconstructionCommand) Validate() error {
	return c.guard.Validate(ErrTriggerReconstructionCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c TriggerReconstructionCommand) OrderID() kernel.UUID {
	return c.orderID
}
