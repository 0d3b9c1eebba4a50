package commands

import (
	"errors"
	"strings"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/pkg/guard"
)

var (
	ErrDispatchOrderCommandIsNotConstructed = errors.New(
		"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
	)
	ErrRecipientEmailIsInvalid = errors.New("recipient email is invalid")
	ErrRecipientNameIsRequired = errors.New("recipient name is required")
)

// DispatchOrderCommand represents a request to assemble the certified document
// and deliver it to the customer by email. The optional certified text lets
// the caller ship a last-minute revision without a separate edit round-trip.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	recipientEmail string
	recipientName  string
	certifiedText  string

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to dispatch a finished order.
// certifiedText may be empty, in which case the text stored on the order is used.
func NewDispatchOrderCommand(
	orderID kernel.UUID,
	recipientEmail string,
	recipientName string,
	certifiedText string,
) (DispatchOrderCommand, error) {
	dispatchCommand := DispatchOrderCommand{
		certifiedText: certifiedText,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dispatchCommand.setOrderID(orderID),
		dispatchCommand.setRecipientEmail(recipientEmail),
		dispatchCommand.setRecipientName(recipientName),
	); err != nil {
		return DispatchOrderCommand{}, err
	}

	return dispatchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c DispatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RecipientEmail returns the delivery address.
func (c DispatchOrderCommand) RecipientEmail() string {
	return c.recipientEmail
}

// RecipientName returns the name printed on the certification page.
func (c DispatchOrderCommand) RecipientName() string {
	return c.recipientName
}

// CertifiedText returns the optional text override, empty when unset.
func (c DispatchOrderCommand) CertifiedText() string {
	return c.certifiedText
}

func (c *DispatchOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DispatchOrderCommand) setRecipientEmail(recipientEmail string) error {
	at := strings.Index(recipientEmail, "@")
	if at < 1 || at == len(recipientEmail)-1 {
		return ErrRecipientEmailIsInvalid
	}

	c.recipientEmail = recipientEmail
	return nil
}

func (c *DispatchOrderCommand) setRecipientName(recipientName string) error {
	if recipientName == "" {
		return ErrRecipientNameIsRequired
	}

	c.recipientName = recipientName
	return nil
}
