package ports

import (
	"context"

	"certify/internal/core/domain/services"
)

// PageImage is one fetched reconstructed page image, ready for embedding.
// MIME is the sniffed content type ("image/png", "image/jpeg").
type PageImage struct {
	Data []byte
	MIME string
}

// DocumentAssembler renders an assembly plan into the final certified PDF
// byte stream: cover page, laid-out text pages, then one page per image at
// its native dimensions. images must align with plan.ImageURLs by index; a
// preview plan passes none.
//
// Assembly fails with errs.ErrUnsupportedGlyph when the embedded typeface
// cannot encode a required character -- characters are never dropped or
// substituted silently.
type DocumentAssembler interface {
	Assemble(ctx context.Context, plan services.AssemblyPlan, images []PageImage) ([]byte, error)
}
