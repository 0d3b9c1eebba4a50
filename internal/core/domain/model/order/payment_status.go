package order

import (
	"fmt"

	"certify/internal/pkg/errs"
)

// PaymentStatus records whether the payment collaborator has confirmed
// payment for the order. It is set exactly once, by that collaborator only.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined value.
	PaymentUnknown PaymentStatus = iota

	// PaymentUnpaid is the initial value at upload.
	PaymentUnpaid

	// PaymentPaid means payment has been confirmed. This gates dispatch.
	PaymentPaid
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "Unknown",
		PaymentUnpaid:  "Unpaid",
		PaymentPaid:    "Paid",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s != PaymentUnpaid && s != PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
