package order

import (
	"errors"
	"time"

	"certify/internal/core/domain/model/kernel"
	"certify/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents one certified-translation order and its full processing
// state. It is the aggregate root tracking the order from upload through AI
// reconstruction to dispatch of the certified document.
//
// Order maintains these invariants:
//   - pageResults contains no duplicate entries (value-equality on the URL)
//   - pageResults is append-only; a failure signal never removes entries
//   - processingStatus is Ready iff at least one page result exists and no
//     failure signal has superseded it
//   - status reaches Completed only through MarkDispatched, exactly once
//   - once Completed the order is logically immutable
//
// All transition methods are pure with respect to persistence: the caller is
// responsible for saving a mutated aggregate, under the atomic
// read-modify-write discipline the repository provides.
type Order struct {
	// id is the unique identifier for the order, assigned at creation
	id kernel.UUID

	// status is the business/delivery axis of the lifecycle
	status Status

	// processingStatus is the reconstruction-engine axis of the lifecycle
	processingStatus ProcessingStatus

	// paymentStatus is owned by the payment collaborator
	paymentStatus PaymentStatus

	// sourceLanguage and targetLanguage identify the translation pair
	sourceLanguage string
	targetLanguage string

	// extractedText is the OCR collaborator's output (plain/HTML), the
	// default assembly input
	extractedText string

	// manualEdits, when present, supersedes extractedText as assembly input
	manualEdits *string

	// pageResults is the ordered, duplicate-free set of reconstructed
	// page image references
	pageResults []PageResult

	// processingError holds the latest failure detail reported by the
	// engine, for display
	processingError string

	// sourceDocumentRef references the uploaded original
	sourceDocumentRef string

	// createdAt is the creation timestamp, immutable
	createdAt time.Time

	// version is the optimistic-lock token managed by the repository
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending/Idle/Unpaid state. This is the
// upload collaborator's entry point into the core.
//
// The identifier, language pair, and source document reference are required;
// extractedText may still be empty when OCR has not finished.
func NewOrder(id kernel.UUID, sourceLanguage, targetLanguage, sourceDocumentRef, extractedText string) (*Order, error) {
	o := &Order{
		status:           StatusPending,
		processingStatus: ProcessingIdle,
		paymentStatus:    PaymentUnpaid,
		extractedText:    extractedText,
		createdAt:        time.Now().UTC(),
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setLanguages(sourceLanguage, targetLanguage),
		o.setSourceDocumentRef(sourceDocumentRef),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. All status fields are
// validated so malformed stored data is rejected instead of propagating.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	processingStatus ProcessingStatus,
	paymentStatus PaymentStatus,
	sourceLanguage, targetLanguage string,
	extractedText string,
	manualEdits *string,
	pageResults []PageResult,
	processingError string,
	sourceDocumentRef string,
	createdAt time.Time,
	version int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		processingStatus.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o := &Order{
		id:                id,
		status:            status,
		processingStatus:  processingStatus,
		paymentStatus:     paymentStatus,
		sourceLanguage:    sourceLanguage,
		targetLanguage:    targetLanguage,
		extractedText:     extractedText,
		manualEdits:       manualEdits,
		pageResults:       append([]PageResult(nil), pageResults...),
		processingError:   processingError,
		sourceDocumentRef: sourceDocumentRef,
		createdAt:         createdAt,
		version:           version,
		isConstructed:     true,
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the business/delivery status.
func (o *Order) Status() Status {
	return o.status
}

// ProcessingStatus returns the reconstruction-engine status.
func (o *Order) ProcessingStatus() ProcessingStatus {
	return o.processingStatus
}

// PaymentStatus returns the payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// SourceLanguage returns the language of the uploaded document.
func (o *Order) SourceLanguage() string {
	return o.sourceLanguage
}

// TargetLanguage returns the language of the certified translation.
func (o *Order) TargetLanguage() string {
	return o.targetLanguage
}

// ExtractedText returns the OCR collaborator's text output.
func (o *Order) ExtractedText() string {
	return o.extractedText
}

// ManualEdits returns the operator-edited rich text, or nil when the
// operator has not overridden the extracted text.
func (o *Order) ManualEdits() *string {
	return o.manualEdits
}

// CertifiedText returns the assembly text input: manual edits when present,
// otherwise the extracted text.
func (o *Order) CertifiedText() string {
	if o.manualEdits != nil && *o.manualEdits != "" {
		return *o.manualEdits
	}
	return o.extractedText
}

// PageResults returns a copy of the ordered page results.
func (o *Order) PageResults() []PageResult {
	return append([]PageResult(nil), o.pageResults...)
}

// ProcessingError returns the latest failure detail reported by the engine.
func (o *Order) ProcessingError() string {
	return o.processingError
}

// SourceDocumentRef returns the reference to the uploaded original.
func (o *Order) SourceDocumentRef() string {
	return o.sourceDocumentRef
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic-lock token restored from persistence.
func (o *Order) Version() int {
	return o.version
}

// MarkPaid records payment confirmation from the payment collaborator and
// advances the business status from Pending to Paid.
func (o *Order) MarkPaid() error {
	newStatus, err := o.status.MarkPaid()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentStatus = PaymentPaid
	return nil
}

// SetManualEdits stores operator-edited rich text that supersedes the
// extracted text as assembly input. Completed orders are immutable.
func (o *Order) SetManualEdits(text string) error {
	if o.status == StatusCompleted {
		return errs.NewInvalidTransitionError(o.status.String(), o.status.String())
	}
	if text == "" {
		return errs.NewValueIsRequiredError("manual edits")
	}

	o.manualEdits = &text
	return nil
}

// CanTrigger reports whether reconstruction may be (re-)started:
// true iff the processing status is Idle or Failed.
func (o *Order) CanTrigger() bool {
	return o.processingStatus.CanTrigger()
}

// StartProcessing flips the order into reconstruction. The processing axis
// moves Idle/Failed -> Processing; the business axis follows when it is in a
// state that can enter Processing ( Paid, Failed, or already Processing).
func (o *Order) StartProcessing() error {
	newProcessing, err := o.processingStatus.Start()
	if err != nil {
		return err
	}

	o.processingStatus = newProcessing
	if o.status == StatusPaid || o.status == StatusFailed || o.status == StatusProcessing {
		o.status = StatusProcessing
	}
	return nil
}

// MergePageResults integrates one completion payload into the accumulated
// page results, exactly once per distinct URL. Every URL not yet present is
// appended with the next sequence number; URLs already present are skipped.
// If at least one fresh URL was appended the processing status becomes Ready.
//
// An empty or fully duplicated payload is a no-op, not an error, so a
// redelivered callback gets the same success acknowledgment as a fresh one.
// Merges against a Completed order are also no-ops: the order is immutable
// and a late callback must still be acknowledged.
//
// Returns the number of freshly appended page results.
func (o *Order) MergePageResults(urls []string) (int, error) {
	if o.status == StatusCompleted {
		return 0, nil
	}

	existing := make(map[string]struct{}, len(o.pageResults))
	for _, pr := range o.pageResults {
		existing[pr.url] = struct{}{}
	}

	added := 0
	for _, url := range urls {
		if url == "" {
			return 0, errs.NewValueIsRequiredError("page result url")
		}
		if _, ok := existing[url]; ok {
			continue
		}

		result, err := NewPageResult(len(o.pageResults)+1, url)
		if err != nil {
			return 0, err
		}
		o.pageResults = append(o.pageResults, result)
		existing[url] = struct{}{}
		added++
	}

	if added > 0 {
		newProcessing, err := o.processingStatus.MarkReady()
		if err != nil {
			return 0, err
		}
		o.processingStatus = newProcessing
	}

	return added, nil
}

// MarkProcessingFailed records a failure signal from the engine. The error
// detail is always retained for display; accumulated page results are never
// touched. If pages have already been confirmed the Ready status is kept --
// partial results are worth more than a clean failure flag. A failure with
// no confirmed pages moves both axes to Failed.
func (o *Order) MarkProcessingFailed(detail string) error {
	if o.status == StatusCompleted {
		return errs.NewInvalidTransitionError(o.status.String(), StatusFailed.String())
	}

	o.processingError = detail

	if o.processingStatus == ProcessingReady {
		return nil
	}

	o.processingStatus = ProcessingFailed
	if o.status == StatusProcessing && len(o.pageResults) == 0 {
		o.status = StatusFailed
	}
	return nil
}

// CanDispatch reports whether the certified document may be assembled and
// sent: processing must be Ready, payment confirmed, and the order not yet
// completed.
func (o *Order) CanDispatch() bool {
	return o.processingStatus == ProcessingReady &&
		o.paymentStatus == PaymentPaid &&
		o.status != StatusCompleted
}

// MarkDispatched commits the terminal transition after the email transport
// confirmed acceptance. Fails with an invalid-transition error when
// CanDispatch does not hold, including on a second dispatch of a completed
// order.
func (o *Order) MarkDispatched() error {
	if !o.CanDispatch() {
		return errs.NewInvalidTransitionError(o.status.String(), StatusCompleted.String())
	}

	// A trigger that preceded payment leaves the business axis on Paid;
	// dispatching such an order passes through Processing.
	if o.status == StatusPaid {
		o.status = StatusProcessing
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setLanguages validates and sets the translation language pair.
func (o *Order) setLanguages(source, target string) error {
	if source == "" {
		return errs.NewValueIsRequiredError("source language")
	}
	if target == "" {
		return errs.NewValueIsRequiredError("target language")
	}
	o.sourceLanguage = source
	o.targetLanguage = target
	return nil
}

// setSourceDocumentRef validates and sets the uploaded-original reference.
func (o *Order) setSourceDocumentRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("source document ref")
	}
	o.sourceDocumentRef = ref
	return nil
}
