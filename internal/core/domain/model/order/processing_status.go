package order

import (
	"fmt"

	"certify/internal/pkg/errs"
)

// ProcessingStatus tracks the reconstruction engine's work on an order.
// It is an independent axis from Status: payment and delivery progress on
// one, the AI engine's page output on the other.
//
// State transitions:
//
//	Idle ──> Processing ──> Ready
//	  ▲          │  ▲
//	  │          ▼  │
//	  └──── (never) Failed ──> Processing  (re-trigger)
//
// Ready never regresses to Idle: once page results exist they are retained
// across a retry so no completed page is ever lost.
type ProcessingStatus int

const (
	// ProcessingUnknown represents an invalid or undefined value.
	ProcessingUnknown ProcessingStatus = iota

	// ProcessingIdle means reconstruction has not been triggered yet.
	ProcessingIdle

	// ProcessingInProgress means the engine has accepted the order and
	// page callbacks are expected.
	ProcessingInProgress

	// ProcessingReady means at least one reconstructed page has been
	// merged and the order can be assembled.
	ProcessingReady

	// ProcessingFailed means the engine reported a failure before any
	// page was confirmed, or a page-level failure while no results exist.
	ProcessingFailed
)

func getProcessingStatusStrings() map[ProcessingStatus]string {
	return map[ProcessingStatus]string{
		ProcessingUnknown:    "Unknown",
		ProcessingIdle:       "Idle",
		ProcessingInProgress: "Processing",
		ProcessingReady:      "Ready",
		ProcessingFailed:     "Failed",
	}
}

func getValidProcessingStatusStrings() map[ProcessingStatus]string {
	//nolint:exhaustive // ProcessingUnknown is intentionally excluded as it's invalid
	return map[ProcessingStatus]string{
		ProcessingIdle:       "Idle",
		ProcessingInProgress: "Processing",
		ProcessingReady:      "Ready",
		ProcessingFailed:     "Failed",
	}
}

// Validate checks if the ProcessingStatus value is valid.
func (s ProcessingStatus) Validate() error {
	if _, ok := getValidProcessingStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"processing status is invalid",
			fmt.Errorf("%d is not a valid processing status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the processing status.
func (s ProcessingStatus) String() string {
	if str, ok := getProcessingStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanTrigger reports whether reconstruction may be (re-)started.
// True iff the status is Idle or Failed.
func (s ProcessingStatus) CanTrigger() bool {
	return s == ProcessingIdle || s == ProcessingFailed
}

// Start transitions the status to Processing.
//
// Valid transitions:
//   - Idle -> Processing (first trigger)
//   - Failed -> Processing (re-trigger)
func (s ProcessingStatus) Start() (ProcessingStatus, error) {
	if !s.CanTrigger() {
		return 0, errs.NewInvalidTransitionError(s.String(), ProcessingInProgress.String())
	}
	return ProcessingInProgress, nil
}

// MarkReady transitions the status to Ready. A merge commits this transition
// whenever it appends at least one fresh page reference, from any valid
// state: Processing is the usual path, Failed covers a completion racing a
// failure signal, Ready covers further pages of the same order, and Idle
// covers an engine retry delivered across a re-trigger window. Once a page is
// confirmed the order is assemblable, whatever the axis said before.
func (s ProcessingStatus) MarkReady() (ProcessingStatus, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return ProcessingReady, nil
}
