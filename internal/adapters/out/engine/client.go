// Package engine contains the HTTP client for the external document
// reconstruction engine.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"certify/internal/core/ports"
	"certify/internal/pkg/errs"
)

// startRequest is the engine's wire format for a reconstruction start call.
type startRequest struct {
	OrderID        string `json:"orderId"`
	DocumentRef    string `json:"documentRef"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	CallbackURL    string `json:"callbackUrl"`
}

// Client talks to the reconstruction engine. The engine answers the start
// call synchronously with an accept/reject; page results arrive later on the
// callback URL passed along with the request.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	callbackBaseURL string
	logger          *slog.Logger
}

// NewClient creates an engine client.
// callbackBaseURL is this service's public base URL; the engine posts results
// to its reconstruction callback route.
func NewClient(baseURL, callbackBaseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		baseURL:         baseURL,
		callbackBaseURL: callbackBaseURL,
		logger:          logger.With("component", "engine-client"),
	}
}

// Start asks the engine to reconstruct the order's document.
// Any transport problem or non-2xx answer is errs.ErrTransportFailure.
func (c *Client) Start(ctx context.Context, req ports.ReconstructionRequest) error {
	payload, err := json.Marshal(startRequest{
		OrderID:        req.OrderID,
		DocumentRef:    req.SourceDocumentRef,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		CallbackURL:    c.callbackURL(req.OrderID),
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/reconstructions",
		bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errs.NewTransportFailureError("engine start", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewTransportFailureError("engine start",
			fmt.Errorf("engine answered %s", resp.Status))
	}

	c.logger.Info("reconstruction started", "orderId", req.OrderID)
	return nil
}

func (c *Client) callbackURL(orderID string) string {
	return c.callbackBaseURL + "/api/v1/reconstruction/callback?orderId=" + url.QueryEscape(orderID)
}
