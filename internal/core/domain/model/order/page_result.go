package order

import (
	"fmt"

	"certify/internal/pkg/errs"
)

// PageResult is one reconstructed page image reference together with the
// sequence number assigned when its merge committed. Sequence numbers start
// at 1 and reflect merge-commit order, not callback arrival time.
//
// PageResult is an immutable value object; two results are duplicates when
// their URLs are equal by value.
type PageResult struct {
	sequence int
	url      string
}

// NewPageResult creates a validated page result.
func NewPageResult(sequence int, url string) (PageResult, error) {
	if sequence <= 0 {
		return PageResult{}, errs.NewValueIsInvalidErrorWithCause(
			"sequence is invalid",
			fmt.Errorf("%d is not greater than 0", sequence),
		)
	}
	if url == "" {
		return PageResult{}, errs.NewValueIsRequiredError("page result url")
	}
	return PageResult{sequence: sequence, url: url}, nil
}

// Sequence returns the merge-commit sequence number (1-based).
func (p PageResult) Sequence() int {
	return p.sequence
}

// URL returns the page image reference.
func (p PageResult) URL() string {
	return p.url
}
