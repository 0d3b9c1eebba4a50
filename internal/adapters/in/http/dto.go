package http

import "time"

// ErrorResponse is the JSON error envelope for all failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the payload for POST /api/v1/orders.
type CreateOrderRequest struct {
	SourceLanguage    string `json:"sourceLanguage"`
	TargetLanguage    string `json:"targetLanguage"`
	SourceDocumentRef string `json:"sourceDocumentRef"`
	ExtractedText     string `json:"extractedText"`
}

// CreateOrderResponse returns the id of the order just created.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// SetEditsRequest is the payload for PUT /api/v1/orders/:id/edits.
type SetEditsRequest struct {
	CertifiedText string `json:"certifiedText"`
}

// ReconstructionCallbackRequest is the engine's webhook payload.
// Status is "completed" or "failed"; Outputs carries page image URLs for
// completed batches, Error the failure detail otherwise.
type ReconstructionCallbackRequest struct {
	Status  string   `json:"status"`
	Outputs []string `json:"outputs,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// ReconstructionCallbackResponse acknowledges a handled callback.
type ReconstructionCallbackResponse struct {
	Received bool `json:"received"`
}

// DispatchOrderRequest is the payload for POST /api/v1/orders/:id/dispatch.
// CertifiedText optionally overrides the stored text for this dispatch.
type DispatchOrderRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
	CertifiedText  string `json:"certifiedText,omitempty"`
}

// PreviewDocumentRequest is the payload for POST /api/v1/orders/:id/preview.
type PreviewDocumentRequest struct {
	CertifiedText string `json:"certifiedText,omitempty"`
}

// PageResult is one confirmed reconstructed page in an order response.
type PageResult struct {
	Sequence int    `json:"sequence"`
	URL      string `json:"url"`
}

// OrderResponse is the full order view for GET /api/v1/orders/:id.
type OrderResponse struct {
	ID                string       `json:"id"`
	Status            string       `json:"status"`
	ProcessingStatus  string       `json:"processingStatus"`
	PaymentStatus     string       `json:"paymentStatus"`
	SourceLanguage    string       `json:"sourceLanguage"`
	TargetLanguage    string       `json:"targetLanguage"`
	ExtractedText     string       `json:"extractedText"`
	ManualEdits       *string      `json:"manualEdits,omitempty"`
	CertifiedText     string       `json:"certifiedText"`
	ProcessingError   string       `json:"processingError,omitempty"`
	SourceDocumentRef string       `json:"sourceDocumentRef"`
	Pages             []PageResult `json:"pages"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// AwaitingDispatchResponse is one row of GET /api/v1/orders/awaiting-dispatch.
type AwaitingDispatchResponse struct {
	ID             string    `json:"id"`
	SourceLanguage string    `json:"sourceLanguage"`
	TargetLanguage string    `json:"targetLanguage"`
	PageCount      int       `json:"pageCount"`
	CreatedAt      time.Time `json:"createdAt"`
}
