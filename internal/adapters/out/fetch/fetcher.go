// Package fetch downloads reconstructed page images from the URLs the engine
// reports.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"certify/internal/core/ports"
	"certify/internal/pkg/errs"
)

// maxImageBytes caps a single page image download. Reconstructed pages are
// rendered scans; anything larger points at a misbehaving engine.
const maxImageBytes = 32 << 20

// HTTPPageFetcher implements ports.PageFetcher over plain HTTP GET.
// The image type is sniffed from the payload, not trusted from headers.
type HTTPPageFetcher struct {
	httpClient *http.Client
}

// NewHTTPPageFetcher creates a fetcher with a per-request timeout.
func NewHTTPPageFetcher(timeout time.Duration) *HTTPPageFetcher {
	return &HTTPPageFetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads one page image.
// Transport problems and non-2xx answers are errs.ErrTransportFailure; a
// payload that is not an image is errs.ErrValueIsInvalid.
func (f *HTTPPageFetcher) Fetch(ctx context.Context, url string) (ports.PageImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.PageImage{}, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return ports.PageImage{}, errs.NewTransportFailureError("fetch page image", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ports.PageImage{}, errs.NewTransportFailureError("fetch page image",
			fmt.Errorf("got %s for %s", resp.Status, url))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return ports.PageImage{}, errs.NewTransportFailureError("fetch page image", err)
	}
	if len(data) > maxImageBytes {
		return ports.PageImage{}, errs.NewValueIsOutOfRangeError("page image size", len(data), 0, maxImageBytes)
	}

	mime := http.DetectContentType(data)
	switch mime {
	case "image/png", "image/jpeg", "image/gif":
	default:
		return ports.PageImage{}, errs.NewValueIsInvalidError("page image content type " + mime)
	}

	return ports.PageImage{Data: data, MIME: mime}, nil
}
