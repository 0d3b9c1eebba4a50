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
	"certify/internal/core/domain/services"
	"certify/internal/core/ports"
	"certify/internal/pkg/errs"
)

// PreviewDocumentQueryHandler renders a draft of the certified document.
// The draft contains the cover and text pages only; page images are skipped
// because a preview must also work before reconstruction has finished.
type PreviewDocumentQueryHandler struct {
	db        *gorm.DB
	planner   services.AssemblyPlanner
	assembler ports.DocumentAssembler
}

// NewPreviewDocumentQueryHandler creates a handler for document previews.
func NewPreviewDocumentQueryHandler(
	db *gorm.DB,
	planner services.AssemblyPlanner,
	assembler ports.DocumentAssembler,
) PreviewDocumentQueryHandler {
	return PreviewDocumentQueryHandler{
		db:        db,
		planner:   planner,
		assembler: assembler,
	}
}

// Handle renders the preview PDF.
// Returns errs.ErrObjectNotFound when the order does not exist and
// errs.ErrUnsupportedGlyph when the text cannot be typeset.
func (h PreviewDocumentQueryHandler) Handle(ctx context.Context, query PreviewDocumentQuery) ([]byte, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	previewed, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	plan, err := h.planner.PlanPreview(previewed, query.TextOverride())
	if err != nil {
		return nil, err
	}

	return h.assembler.Assemble(ctx, plan, nil)
}

// loadOrder restores the aggregate from its row. Preview is the one query that
// needs domain behavior (certified text precedence lives on the aggregate), so
// it rebuilds the order instead of scanning a flat response.
func (h PreviewDocumentQueryHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
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
			created_at,
			version
		FROM orders
		WHERE id = ?
	`, orderID.String()).Row()

	var (
		id                uuid.UUID
		status            int
		processing        int
		payment           int
		sourceLanguage    string
		targetLanguage    string
		extractedText     string
		manualEdits       sql.NullString
		processingError   string
		sourceDocumentRef string
		pagesRaw          []byte
		createdAt         sql.NullTime
		version           int
	)

	err := row.Scan(
		&id,
		&status,
		&processing,
		&payment,
		&sourceLanguage,
		&targetLanguage,
		&extractedText,
		&manualEdits,
		&processingError,
		&sourceDocumentRef,
		&pagesRaw,
		&createdAt,
		&version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return nil, err
	}

	restoredID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	var edits *string
	if manualEdits.Valid {
		edits = &manualEdits.String
	}

	var records []pageResultRecord
	if len(pagesRaw) > 0 {
		if err = json.Unmarshal(pagesRaw, &records); err != nil {
			return nil, err
		}
	}

	pageResults := make([]order.PageResult, 0, len(records))
	for _, record := range records {
		pageResult, prErr := order.NewPageResult(record.Sequence, record.URL)
		if prErr != nil {
			return nil, prErr
		}
		pageResults = append(pageResults, pageResult)
	}

	return order.RestoreOrder(
		restoredID,
		order.Status(status),
		order.ProcessingStatus(processing),
		order.PaymentStatus(payment),
		sourceLanguage, targetLanguage,
		extractedText,
		edits,
		pageResults,
		processingError,
		sourceDocumentRef,
		createdAt.Time,
		version,
	)
}
