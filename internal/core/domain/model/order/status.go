package order

import (
	"fmt"

	"certify/internal/pkg/errs"
)

// Status represents the business/delivery state of an order. It is
// independent from ProcessingStatus, which tracks the reconstruction engine.
//
// State transitions:
//
//	Pending ──> Paid ──> Processing ──> Completed
//	                         │  ▲
//	                         ▼  │
//	                       Failed
//
// Failed is reachable from Processing only and is left solely by a
// re-triggered reconstruction. Completed is final.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status assigned at upload,
	// before payment has been confirmed.
	StatusPending

	// StatusPaid indicates the payment collaborator confirmed payment.
	StatusPaid

	// StatusProcessing indicates reconstruction has been triggered.
	StatusProcessing

	// StatusCompleted indicates the certified document was dispatched.
	// This is a final state with no further transitions allowed.
	StatusCompleted

	// StatusFailed indicates reconstruction failed before any page was
	// confirmed. A re-trigger moves the order back to StatusProcessing.
	StatusFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusPending:    "Pending",
		StatusPaid:       "Paid",
		StatusProcessing: "Processing",
		StatusCompleted:  "Completed",
		StatusFailed:     "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:    "Pending",
		StatusPaid:       "Paid",
		StatusProcessing: "Processing",
		StatusCompleted:  "Completed",
		StatusFailed:     "Failed",
	}
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values are invalid. This is used to reject
// malformed status values arriving from persistence or external payloads.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// MarkPaid transitions the status to Paid.
//
// Valid transitions:
//   - Pending -> Paid
//
// Any other source status is a caller bug: payment confirmation arrives
// exactly once from the payment collaborator.
func (s Status) MarkPaid() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusPaid.String())
	}
	return StatusPaid, nil
}

// StartProcessing transitions the status to Processing.
//
// Valid transitions:
//   - Paid -> Processing (first trigger)
//   - Failed -> Processing (re-trigger after a global failure)
//   - Processing -> Processing (re-trigger after a page-level failure)
func (s Status) StartProcessing() (Status, error) {
	if s != StatusPaid && s != StatusFailed && s != StatusProcessing {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusProcessing.String())
	}
	return StatusProcessing, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Processing -> Completed (certified document dispatched)
//
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	if s != StatusProcessing {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusCompleted.String())
	}
	return StatusCompleted, nil
}

// Fail transitions the status to Failed.
//
// Valid transitions:
//   - Processing -> Failed
//
// Pending and Paid orders cannot fail on this axis: before reconstruction is
// triggered there is nothing that can fail globally.
func (s Status) Fail() (Status, error) {
	if s != StatusProcessing {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusFailed.String())
	}
	return StatusFailed, nil
}
