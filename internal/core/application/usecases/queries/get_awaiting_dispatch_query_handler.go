package queries

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/core/domain/model/order"
)

// GetAwaitingDispatchQueryHandler lists orders whose certified document can be
// assembled and sent right now.
type GetAwaitingDispatchQueryHandler struct {
	db *gorm.DB
}

// NewGetAwaitingDispatchQueryHandler creates a handler for dispatch-queue queries.
// Requires a GORM database connection for query execution.
func NewGetAwaitingDispatchQueryHandler(db *gorm.DB) GetAwaitingDispatchQueryHandler {
	return GetAwaitingDispatchQueryHandler{db: db}
}

// Handle executes the query.
// Oldest orders come first so the dispatch backlog drains in arrival order.
func (h GetAwaitingDispatchQueryHandler) Handle(
	ctx context.Context,
	query GetAwaitingDispatchQuery,
) ([]GetAwaitingDispatchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAwaitingDispatchQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			source_language,
			target_language,
			page_results,
			created_at
		FROM orders
		WHERE processing_status = ?
		  AND payment_status = ?
		  AND status != ?
		ORDER BY created_at, id
	`, int(order.ProcessingReady), int(order.PaymentPaid), int(order.StatusCompleted)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp     GetAwaitingDispatchQueryResponse
			id       uuid.UUID
			pagesRaw []byte
		)

		err = rows.Scan(&id, &resp.SourceLanguage, &resp.TargetLanguage, &pagesRaw, &resp.CreatedAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		var records []pageResultRecord
		if len(pagesRaw) > 0 {
			if err = json.Unmarshal(pagesRaw, &records); err != nil {
				return nil, err
			}
		}
		resp.PageCount = len(records)

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
