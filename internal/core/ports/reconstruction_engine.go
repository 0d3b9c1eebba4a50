package ports

import "context"

// ReconstructionRequest is the handshake payload handed to the external AI
// engine when reconstruction is triggered for an order. Page completions and
// failures come back asynchronously on the webhook, not on this call.
type ReconstructionRequest struct {
	OrderID           string
	SourceDocumentRef string
	SourceLanguage    string
	TargetLanguage    string
}

// ReconstructionEngine starts external processing for an order. Start only
// acknowledges the handshake; it says nothing about completion. Failures are
// reported as errs.ErrTransportFailure.
type ReconstructionEngine interface {
	Start(ctx context.Context, req ReconstructionRequest) error
}

// PageFetcher retrieves one reconstructed page image by its reference.
// Implementations bound each fetch with a timeout; a failed or timed-out
// fetch yields errs.ErrTransportFailure.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (PageImage, error)
}
