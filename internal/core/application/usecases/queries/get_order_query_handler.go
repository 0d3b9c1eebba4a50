package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/core/domain/model/order"
	"certify/internal/pkg/errs"
)

// pageResultRecord mirrors the JSONB encoding used by the order repository.
type pageResultRecord struct {
	Sequence int    `json:"sequence"`
	URL      string `json:"url"`
}

// GetOrderQueryHandler reads a single order row from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup.
// Returns errs.ErrObjectNotFound when no order with the given id exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			processing_status,
			payment_status,
			source_language,
			target_language,
			extracted_text,
			manual_edits,
			processing_error,
			source_document_ref,
			page_results,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		resp        GetOrderQueryResponse
		id          uuid.UUID
		status      int
		processing  int
		payment     int
		manualEdits sql.NullString
		pagesRaw    []byte
	)

	err := row.Scan(
		&id,
		&status,
		&processing,
		&payment,
		&resp.SourceLanguage,
		&resp.TargetLanguage,
		&resp.ExtractedText,
		&manualEdits,
		&resp.ProcessingError,
		&resp.SourceDocumentRef,
		&pagesRaw,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID

	resp.Status = order.Status(status).String()
	resp.ProcessingStatus = order.ProcessingStatus(processing).String()
	resp.PaymentStatus = order.PaymentStatus(payment).String()

	resp.CertifiedText = resp.ExtractedText
	if manualEdits.Valid {
		edits := manualEdits.String
		resp.ManualEdits = &edits
		if edits != "" {
			resp.CertifiedText = edits
		}
	}

	var records []pageResultRecord
	if len(pagesRaw) > 0 {
		if err = json.Unmarshal(pagesRaw, &records); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	resp.Pages = make([]PageResultResponse, 0, len(records))
	for _, record := range records {
		resp.Pages = append(resp.Pages, PageResultResponse{
			Sequence: record.Sequence,
			URL:      record.URL,
		})
	}

	return resp, nil
}
