package commands

import (
	"errors"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/pkg/guard"
)

var (
	ErrSetManualEditsCommandIsNotConstructed = errors.New(
		"SetManualEditsCommand must be created via NewSetManualEditsCommand constructor",
	)
	ErrManualEditsAreRequired = errors.New("manual edits text is required")
)

// SetManualEditsCommand represents an operator revision of the certified text.
// The revised text replaces the machine-extracted text in every later
// assembly of the order's certified document.
type SetManualEditsCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	manualEdits string

	guard guard.ConstructorGuard
}

// NewSetManualEditsCommand creates a command to record revised certified text.
// The revision must not be empty.
func NewSetManualEditsCommand(orderID kernel.UUID, manualEdits string) (SetManualEditsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SetManualEditsCommand{}, err
	}

	if manualEdits == "" {
		return SetManualEditsCommand{}, ErrManualEditsAreRequired
	}

	return SetManualEditsCommand{
		orderID:     orderID,
		manualEdits: manualEdits,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetManualEditsCommand) Validate() error {
	return c.guard.Validate(ErrSetManualEditsCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c SetManualEditsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ManualEdits returns the revised certified text.
func (c SetManualEditsCommand) ManualEdits() string {
	return c.manualEdits
}
