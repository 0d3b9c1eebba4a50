package assembler

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"certify/internal/core/domain/services"
	"certify/internal/core/ports"
	"certify/internal/pkg/errs"
)

const (
	pageMargin   = 20.0 // mm
	bodyFontSize = 11.0
	lineHeight   = 6.0 // mm

	certificationStatement = "This is to certify that the attached document is a true and accurate " +
		"rendering of the original, produced from the certified text on record for this order."
)

// stampDesc positions the certification stamp at the bottom center of every
// page, in pdfcpu's watermark description syntax.
const stampDesc = "fontname:Helvetica, points:8, pos:bc, offset:0 10, " +
	"fillcolor:#404040, rotation:0, opacity:1, scalefactor:1 abs"

// PDFAssembler renders assembly plans with fpdf and finishes the stream with
// pdfcpu: a certification stamp on every page and a structural validation
// pass. Implements ports.DocumentAssembler.
type PDFAssembler struct {
	fontData []byte
	fontName string
	checker  *glyphChecker
}

// NewPDFAssembler creates an assembler. fontData is an optional TTF typeface
// embedded into the document; when nil the built-in Helvetica core font is
// used and text is limited to its ASCII coverage.
func NewPDFAssembler(fontData []byte) (*PDFAssembler, error) {
	checker, err := newGlyphChecker(fontData)
	if err != nil {
		return nil, err
	}

	fontName := "Helvetica"
	if fontData != nil {
		fontName = "certified"
	}

	return &PDFAssembler{
		fontData: fontData,
		fontName: fontName,
		checker:  checker,
	}, nil
}

// Assemble renders the plan into the final certified PDF byte stream.
// Page order is [cover, text pages, one page per image]. Returns
// errs.ErrUnsupportedGlyph when the typeface cannot encode the text.
func (a *PDFAssembler) Assemble(
	ctx context.Context,
	plan services.AssemblyPlan,
	images []ports.PageImage,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Coverage is checked on the normalized text, after entity decoding and
	// markup stripping, so the gate sees exactly the runes that get drawn.
	paragraphs := normalizeText(plan.CertifiedText)
	for _, paragraph := range paragraphs {
		if err := a.checker.check(paragraph); err != nil {
			return nil, err
		}
	}
	if err := a.checker.check(plan.RecipientName); err != nil {
		return nil, err
	}

	raw, err := a.compose(plan, paragraphs, images)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return a.certify(raw, plan.OrderID)
}

// compose builds the unstamped document with fpdf.
func (a *PDFAssembler) compose(plan services.AssemblyPlan, paragraphs []string, images []ports.PageImage) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	if a.fontData != nil {
		pdf.AddUTF8FontFromBytes(a.fontName, "", a.fontData)
	}

	a.addCoverPage(pdf, plan)
	a.addTextPages(pdf, paragraphs)

	for i, image := range images {
		if err := addImagePage(pdf, i, image); err != nil {
			return nil, err
		}
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (a *PDFAssembler) addCoverPage(pdf *fpdf.Fpdf, plan services.AssemblyPlan) {
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pdf.SetFont(a.fontName, "", 24)
	pdf.CellFormat(0, 14, "Certified Translation", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont(a.fontName, "", bodyFontSize)
	pdf.MultiCell(0, lineHeight, certificationStatement, "", "L", false)
	pdf.Ln(8)

	if plan.RecipientName != "" {
		pdf.CellFormat(0, lineHeight, "Prepared for: "+plan.RecipientName, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, lineHeight, "Order: "+plan.OrderID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, "Document: "+plan.Filename, "", 1, "L", false, 0, "")

	// Verification footer, anchored above the bottom margin.
	pdf.SetY(-pageMargin - lineHeight*2)
	pdf.SetFont(a.fontName, "", 8)
	pdf.MultiCell(0, 4,
		fmt.Sprintf("This certification can be verified by quoting order %s.", plan.OrderID),
		"", "C", false)
}

// addTextPages renders the normalized paragraphs. Empty certified text adds
// no page at all: the page-count contract is cover + text + images, and an
// order without text has no text pages.
func (a *PDFAssembler) addTextPages(pdf *fpdf.Fpdf, paragraphs []string) {
	pdf.SetFont(a.fontName, "", bodyFontSize)

	pageWidth, _ := pdf.GetPageSize()
	usableWidth := pageWidth - 2*pageMargin

	lines := layoutParagraphs(paragraphs, usableWidth, pdf.GetStringWidth)
	if len(lines) == 0 {
		return
	}

	pdf.AddPage()
	for _, line := range lines {
		if line == "" {
			pdf.Ln(lineHeight / 2)
			continue
		}
		pdf.CellFormat(0, lineHeight, line, "", 1, "L", false, 0, "")
	}
}

// addImagePage puts one reconstructed page image on its own page at native
// dimensions, so the certified copy does not resample the source rendering.
func addImagePage(pdf *fpdf.Fpdf, index int, image ports.PageImage) error {
	imageType, err := fpdfImageType(image.MIME)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("reconstructed-page-%d", index+1)
	opts := fpdf.ImageOptions{ImageType: imageType}

	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(image.Data))
	if pdf.Err() {
		return pdf.Error()
	}

	width, height := info.Extent()
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	pdf.ImageOptions(name, 0, 0, width, height, false, opts, 0, "")

	return nil
}

func fpdfImageType(mime string) (string, error) {
	switch mime {
	case "image/png":
		return "PNG", nil
	case "image/jpeg":
		return "JPG", nil
	case "image/gif":
		return "GIF", nil
	default:
		return "", errs.NewValueIsInvalidError("image MIME type " + mime)
	}
}

// certify stamps every page with the order id and validates the final stream.
func (a *PDFAssembler) certify(raw []byte, orderID string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	wm, err := api.TextWatermark("Certified translation "+orderID, stampDesc, true, false, types.POINTS)
	if err != nil {
		return nil, err
	}

	var stamped bytes.Buffer
	if err = api.AddWatermarks(bytes.NewReader(raw), &stamped, nil, wm, conf); err != nil {
		return nil, err
	}

	if err = api.Validate(bytes.NewReader(stamped.Bytes()), conf); err != nil {
		return nil, err
	}

	return stamped.Bytes(), nil
}
