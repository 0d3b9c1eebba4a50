package queries

import (
	"errors"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/pkg/guard"
)

var ErrPreviewDocumentQueryIsNotConstructed = errors.New(
	"PreviewDocumentQuery must be created via NewPreviewDocumentQuery constructor",
)

// PreviewDocumentQuery renders the certified document as it would ship today,
// without page images and without touching the order state. The optional text
// override lets an operator proof a revision before saving it.
type PreviewDocumentQuery struct {
	orderID      kernel.UUID
	textOverride string

	guard guard.ConstructorGuard
}

// NewPreviewDocumentQuery creates a preview query.
// textOverride may be empty, in which case the stored certified text is rendered.
func NewPreviewDocumentQuery(orderID kernel.UUID, textOverride string) (PreviewDocumentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return PreviewDocumentQuery{}, err
	}

	return PreviewDocumentQuery{
		orderID:      orderID,
		textOverride: textOverride,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q PreviewDocumentQuery) Validate() error {
	return q.guard.Validate(ErrPreviewDocumentQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q PreviewDocumentQuery) OrderID() kernel.UUID {
	return q.orderID
}

// TextOverride returns the optional certified text override, empty when unset.
func (q PreviewDocumentQuery) TextOverride() string {
	return q.textOverride
}
