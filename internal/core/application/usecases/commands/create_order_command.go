package commands

import (
	"errors"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrSourceLanguageIsRequired    = errors.New("source language is required")
	ErrTargetLanguageIsRequired    = errors.New("target language is required")
	ErrSourceDocumentRefIsRequired = errors.New("source document reference is required")
	ErrExtractedTextIsRequired     = errors.New("extracted text is required")
)

// CreateOrderCommand represents a request to register a new translation order.
// Encapsulates the language pair, the uploaded source document reference and
// the machine-extracted text that seeds the certified translation.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "de", "en", "s3://inbox/scan-17.pdf", text)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created and awaiting payment", orderID)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	sourceLanguage    string
	targetLanguage    string
	sourceDocumentRef string
	extractedText     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new translation order.
// Validates that the order ID is valid and that the language pair, document
// reference and extracted text are all present.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	sourceLanguage string,
	targetLanguage string,
	sourceDocumentRef string,
	extractedText string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setSourceLanguage(sourceLanguage),
		orderCommand.setTargetLanguage(targetLanguage),
		orderCommand.setSourceDocumentRef(sourceDocumentRef),
		orderCommand.setExtractedText(extractedText),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SourceLanguage returns the language of the uploaded document.
func (c CreateOrderCommand) SourceLanguage() string {
	return c.sourceLanguage
}

// TargetLanguage returns the language the document is translated into.
func (c CreateOrderCommand) TargetLanguage() string {
	return c.targetLanguage
}

// SourceDocumentRef returns the storage reference of the uploaded document.
func (c CreateOrderCommand) SourceDocumentRef() string {
	return c.sourceDocumentRef
}

// ExtractedText returns the machine-extracted translation text.
func (c CreateOrderCommand) ExtractedText() string {
	return c.extractedText
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setSourceLanguage(sourceLanguage string) error {
	if sourceLanguage == "" {
		return ErrSourceLanguageIsRequired
	}

	c.sourceLanguage = sourceLanguage
	return nil
}

func (c *CreateOrderCommand) setTargetLanguage(targetLanguage string) error {
	if targetLanguage == "" {
		return ErrTargetLanguageIsRequired
	}

	c.targetLanguage = targetLanguage
	return nil
}

func (c *CreateOrderCommand) setSourceDocumentRef(sourceDocumentRef string) error {
	if sourceDocumentRef == "" {
		return ErrSourceDocumentRefIsRequired
	}

	c.sourceDocumentRef = sourceDocumentRef
	return nil
}

func (c *CreateOrderCommand) setExtractedText(extractedText string) error {
	if extractedText == "" {
		return ErrExtractedTextIsRequired
	}

	c.extractedText = extractedText
	return nil
}
