// Package http is the inbound HTTP adapter: Echo routes, request/response
// DTOs and the mapping of domain errors onto status codes.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"certify/internal/core/application/usecases/commands"
	"certify/internal/core/application/usecases/queries"
	"certify/internal/core/domain/model/kernel"
	"certify/internal/core/ports"
	"certify/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler           commands.CreateOrderCommandHandler
	markOrderPaidHandler         commands.MarkOrderPaidCommandHandler
	setManualEditsHandler        commands.SetManualEditsCommandHandler
	triggerReconstructionHandler commands.TriggerReconstructionCommandHandler
	applyResultHandler           commands.ApplyReconstructionResultCommandHandler
	dispatchOrderHandler         commands.DispatchOrderCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getAwaitingHandler     queries.GetAwaitingDispatchQueryHandler
	previewDocumentHandler queries.PreviewDocumentQueryHandler

	subscriber ports.OrderSubscriber
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	markOrderPaidHandler commands.MarkOrderPaidCommandHandler,
	setManualEditsHandler commands.SetManualEditsCommandHandler,
	triggerReconstructionHandler commands.TriggerReconstructionCommandHandler,
	applyResultHandler commands.ApplyReconstructionResultCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAwaitingHandler queries.GetAwaitingDispatchQueryHandler,
	previewDocumentHandler queries.PreviewDocumentQueryHandler,
	subscriber ports.OrderSubscriber,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		markOrderPaidHandler:         markOrderPaidHandler,
		setManualEditsHandler:        setManualEditsHandler,
		triggerReconstructionHandler: triggerReconstructionHandler,
		applyResultHandler:           applyResultHandler,
		dispatchOrderHandler:         dispatchOrderHandler,
		getOrderHandler:              getOrderHandler,
		getAwaitingHandler:           getAwaitingHandler,
		previewDocumentHandler:       previewDocumentHandler,
		subscriber:                   subscriber,
	}
}

// RegisterRoutes attaches all API routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/awaiting-dispatch", s.GetAwaitingDispatch)
	v1.GET("/orders/:id", s.GetOrder)
	v1.POST("/orders/:id/payment", s.MarkOrderPaid)
	v1.PUT("/orders/:id/edits", s.SetManualEdits)
	v1.POST("/orders/:id/reconstruction", s.TriggerReconstruction)
	v1.POST("/orders/:id/dispatch", s.DispatchOrder)
	v1.POST("/orders/:id/preview", s.PreviewDocument)
	v1.GET("/orders/:id/events", s.StreamOrderEvents)
	v1.POST("/reconstruction/callback", s.ReconstructionCallback)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		req.SourceLanguage,
		req.TargetLanguage,
		req.SourceDocumentRef,
		req.ExtractedText,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	details, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(details))
}

// GetAwaitingDispatch handles GET /api/v1/orders/awaiting-dispatch.
func (s *Server) GetAwaitingDispatch(ctx echo.Context) error {
	awaiting, err := s.getAwaitingHandler.Handle(ctx.Request().Context(), queries.NewGetAwaitingDispatchQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]AwaitingDispatchResponse, 0, len(awaiting))
	for _, row := range awaiting {
		response = append(response, AwaitingDispatchResponse{
			ID:             row.ID.String(),
			SourceLanguage: row.SourceLanguage,
			TargetLanguage: row.TargetLanguage,
			PageCount:      row.PageCount,
			CreatedAt:      row.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkOrderPaid handles POST /api/v1/orders/:id/payment.
func (s *Server) MarkOrderPaid(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewMarkOrderPaidCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.markOrderPaidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetManualEdits handles PUT /api/v1/orders/:id/edits.
func (s *Server) SetManualEdits(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req SetEditsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetManualEditsCommand(orderID, req.CertifiedText)
	if err != nil {
		return badRequest(ctx, "Invalid edits: "+err.Error())
	}

	if err := s.setManualEditsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TriggerReconstruction handles POST /api/v1/orders/:id/reconstruction.
func (s *Server) TriggerReconstruction(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewTriggerReconstructionCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.triggerReconstructionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// ReconstructionCallback handles POST /api/v1/reconstruction/callback?orderId=….
// Every handled outcome, including duplicate deliveries, is acknowledged with
// {received: true} so the engine stops retrying.
func (s *Server) ReconstructionCallback(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.QueryParam("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid or missing orderId")
	}

	var req ReconstructionCallbackRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var succeeded bool
	switch req.Status {
	case "completed":
		succeeded = true
	case "failed":
		succeeded = false
	default:
		return badRequest(ctx, "Unknown callback status")
	}

	cmd, err := commands.NewApplyReconstructionResultCommand(orderID, succeeded, req.Outputs, req.Error)
	if err != nil {
		return badRequest(ctx, "Invalid callback payload: "+err.Error())
	}

	if err := s.applyResultHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReconstructionCallbackResponse{Received: true})
}

// DispatchOrder handles POST /api/v1/orders/:id/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req DispatchOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID, req.RecipientEmail, req.RecipientName, req.CertifiedText)
	if err != nil {
		return badRequest(ctx, "Invalid dispatch request: "+err.Error())
	}

	if err := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PreviewDocument handles POST /api/v1/orders/:id/preview.
// Responds with the draft PDF itself, not JSON.
func (s *Server) PreviewDocument(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req PreviewDocumentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewPreviewDocumentQuery(orderID, req.CertifiedText)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	document, err := s.previewDocumentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.Blob(http.StatusOK, "application/pdf", document)
}

// StreamOrderEvents handles GET /api/v1/orders/:id/events as a Server-Sent
// Events stream. The current state is sent as the first event, then every
// committed change until the client disconnects.
func (s *Server) StreamOrderEvents(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	current, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshots, cancel := s.subscriber.Subscribe(orderID.String())
	defer cancel()

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	if err := writeEvent(resp, snapshotFromDetails(current)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil
		case snapshot, open := <-snapshots:
			if !open {
				return nil
			}
			if err := writeEvent(resp, snapshot); err != nil {
				return err
			}
		}
	}
}

func writeEvent(resp *echo.Response, snapshot ports.OrderSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(resp, "data: %s\n\n", data); err != nil {
		return err
	}

	resp.Flush()
	return nil
}

func snapshotFromDetails(details queries.GetOrderQueryResponse) ports.OrderSnapshot {
	return ports.OrderSnapshot{
		OrderID:          details.ID.String(),
		Status:           details.Status,
		ProcessingStatus: details.ProcessingStatus,
		PaymentStatus:    details.PaymentStatus,
		PageCount:        len(details.Pages),
		ProcessingError:  details.ProcessingError,
	}
}

func orderResponseFrom(details queries.GetOrderQueryResponse) OrderResponse {
	pages := make([]PageResult, 0, len(details.Pages))
	for _, page := range details.Pages {
		pages = append(pages, PageResult{Sequence: page.Sequence, URL: page.URL})
	}

	return OrderResponse{
		ID:                details.ID.String(),
		Status:            details.Status,
		ProcessingStatus:  details.ProcessingStatus,
		PaymentStatus:     details.PaymentStatus,
		SourceLanguage:    details.SourceLanguage,
		TargetLanguage:    details.TargetLanguage,
		ExtractedText:     details.ExtractedText,
		ManualEdits:       details.ManualEdits,
		CertifiedText:     details.CertifiedText,
		ProcessingError:   details.ProcessingError,
		SourceDocumentRef: details.SourceDocumentRef,
		Pages:             pages,
		CreatedAt:         details.CreatedAt,
	}
}

func pathOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application and domain errors onto HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrOrderNotReady),
		errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUnsupportedGlyph):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrTransportFailure):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrVersionConflict):
		// Handlers retry conflicts internally; surfacing one here means the
		// retries were exhausted.
		status = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
