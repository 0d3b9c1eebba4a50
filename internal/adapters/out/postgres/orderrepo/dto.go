// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Page results live in a JSONB column: they are only ever read and written as
// part of the whole aggregate, so a child table would buy nothing but joins.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status            int       `gorm:"index"`
	ProcessingStatus  int       `gorm:"index"`
	PaymentStatus     int
	SourceLanguage    string
	TargetLanguage    string
	ExtractedText     string  `gorm:"type:text"`
	ManualEdits       *string `gorm:"type:text"`
	ProcessingError   string  `gorm:"type:text"`
	SourceDocumentRef string
	PageResults       PageResultsDTO `gorm:"type:jsonb"`
	CreatedAt         time.Time
	UpdatedAt         time.Time // maintained by GORM, feeds the processing watchdog
	Version           int
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// PageResultDTO is one confirmed page inside the JSONB column.
// The JSON keys are shared with the read-side queries.
type PageResultDTO struct {
	Sequence int    `json:"sequence"`
	URL      string `json:"url"`
}

// PageResultsDTO maps the page result list onto a JSONB column.
type PageResultsDTO []PageResultDTO

// Value serializes the page results for storage. An empty list is stored as
// an empty JSON array, not NULL.
func (p PageResultsDTO) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "[]", nil
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return string(raw), nil
}

// Scan deserializes the JSONB column.
func (p *PageResultsDTO) Scan(value any) error {
	if value == nil {
		*p = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported page results column type %T", value)
	}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	results := aggregate.PageResults()
	pages := make(PageResultsDTO, 0, len(results))
	for _, result := range results {
		pages = append(pages, PageResultDTO{
			Sequence: result.Sequence(),
			URL:      result.URL(),
		})
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		Status:            int(aggregate.Status()),
		ProcessingStatus:  int(aggregate.ProcessingStatus()),
		PaymentStatus:     int(aggregate.PaymentStatus()),
		SourceLanguage:    aggregate.SourceLanguage(),
		TargetLanguage:    aggregate.TargetLanguage(),
		ExtractedText:     aggregate.ExtractedText(),
		ManualEdits:       aggregate.ManualEdits(),
		ProcessingError:   aggregate.ProcessingError(),
		SourceDocumentRef: aggregate.SourceDocumentRef(),
		PageResults:       pages,
		CreatedAt:         aggregate.CreatedAt(),
		Version:           aggregate.Version(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pageResults := make([]order.PageResult, 0, len(dto.PageResults))
	for _, page := range dto.PageResults {
		pageResult, pageErr := order.NewPageResult(page.Sequence, page.URL)
		if pageErr != nil {
			return nil, pageErr
		}
		pageResults = append(pageResults, pageResult)
	}

	return order.RestoreOrder(
		id,
		order.Status(dto.Status),
		order.ProcessingStatus(dto.ProcessingStatus),
		order.PaymentStatus(dto.PaymentStatus),
		dto.SourceLanguage, dto.TargetLanguage,
		dto.ExtractedText,
		dto.ManualEdits,
		pageResults,
		dto.ProcessingError,
		dto.SourceDocumentRef,
		dto.CreatedAt,
		dto.Version,
	)
}
