package services

import (
	"fmt"

	"certify/internal/core/domain/model/order"
	"certify/internal/pkg/errs"
)

// AssemblyPlan captures everything the document assembler needs to render a
// certified PDF: cover-page metadata, the certified text body, and the page
// image references in their committed sequence order. ImageURLs is empty for
// a preview plan.
type AssemblyPlan struct {
	Filename      string
	OrderID       string
	RecipientName string
	CertifiedText string
	ImageURLs     []string
}

// AssemblyPlanner is a domain service that turns an order into an
// AssemblyPlan. It owns the input-precedence rule (an explicit text override
// beats stored manual edits, which beat extracted text) so dispatch and
// preview cannot drift apart.
type AssemblyPlanner struct{}

// NewAssemblyPlanner creates a new AssemblyPlanner instance.
func NewAssemblyPlanner() AssemblyPlanner {
	return AssemblyPlanner{}
}

// PlanDispatch builds the full assembly plan: cover, text pages, and one page
// per reconstructed image in sequence order.
//
// textOverride, when non-empty, is the operator-confirmed text submitted with
// the dispatch request; otherwise the order's stored precedence applies.
func (p AssemblyPlanner) PlanDispatch(o *order.Order, textOverride, recipientName string) (AssemblyPlan, error) {
	if err := o.Validate(); err != nil {
		return AssemblyPlan{}, err
	}
	if recipientName == "" {
		return AssemblyPlan{}, errs.NewValueIsRequiredError("recipient name")
	}

	results := o.PageResults()
	urls := make([]string, 0, len(results))
	for _, pr := range results {
		urls = append(urls, pr.URL())
	}

	return AssemblyPlan{
		Filename:      planFilename(o),
		OrderID:       o.ID().String(),
		RecipientName: recipientName,
		CertifiedText: certifiedText(o, textOverride),
		ImageURLs:     urls,
	}, nil
}

// PlanPreview builds the lower-fidelity plan: cover and text pages only, no
// images, no recipient. Used by the preview endpoint, which never mutates the
// order.
func (p AssemblyPlanner) PlanPreview(o *order.Order, textOverride string) (AssemblyPlan, error) {
	if err := o.Validate(); err != nil {
		return AssemblyPlan{}, err
	}

	return AssemblyPlan{
		Filename:      planFilename(o),
		OrderID:       o.ID().String(),
		CertifiedText: certifiedText(o, textOverride),
	}, nil
}

func certifiedText(o *order.Order, override string) string {
	if override != "" {
		return override
	}
	return o.CertifiedText()
}

func planFilename(o *order.Order) string {
	return fmt.Sprintf("certified-translation-%s.pdf", o.ID().String())
}
