package assembler

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certify/internal/core/domain/services"
	"certify/internal/core/ports"
	"certify/internal/pkg/errs"
)

func testPlan(text string) services.AssemblyPlan {
	return services.AssemblyPlan{
		Filename:      "certified-translation-test.pdf",
		OrderID:       "0d9bea49-1c10-4d83-aa45-9712b5ba9b0a",
		RecipientName: "Anna Schmidt",
		CertifiedText: text,
	}
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pageCount(t *testing.T, document []byte) int {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	count, err := api.PageCount(bytes.NewReader(document), conf)
	require.NoError(t, err)
	return count
}

func TestPDFAssembler_Assemble_ProducesValidPDF(t *testing.T) {
	a, err := NewPDFAssembler(nil)
	require.NoError(t, err)

	document, err := a.Assemble(t.Context(), testPlan("A short certified text."), nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(document, []byte("%PDF-")))

	// Cover plus one text page.
	assert.Equal(t, 2, pageCount(t, document))
}

func TestPDFAssembler_Assemble_OnePagePerImage(t *testing.T) {
	a, err := NewPDFAssembler(nil)
	require.NoError(t, err)

	images := []ports.PageImage{
		{Data: testPNG(t, 200, 300), MIME: "image/png"},
		{Data: testPNG(t, 300, 200), MIME: "image/png"},
	}

	document, err := a.Assemble(t.Context(), testPlan("body"), images)
	require.NoError(t, err)

	// Cover, one text page, two image pages.
	assert.Equal(t, 4, pageCount(t, document))
}

func TestPDFAssembler_Assemble_LongTextBreaksPages(t *testing.T) {
	a, err := NewPDFAssembler(nil)
	require.NoError(t, err)

	long := bytes.Repeat([]byte("several words that wrap and fill the page over and over. "), 200)
	document, err := a.Assemble(t.Context(), testPlan(string(long)), nil)
	require.NoError(t, err)

	assert.Greater(t, pageCount(t, document), 2)
}

func TestPDFAssembler_Assemble_UnsupportedGlyph(t *testing.T) {
	// The core-font fallback covers ASCII only.
	a, err := NewPDFAssembler(nil)
	require.NoError(t, err)

	_, err = a.Assemble(t.Context(), testPlan("Geburtsurkunde für Anna"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnsupportedGlyph)
}

func TestPDFAssembler_Assemble_EntityEncodedGlyphIsRejected(t *testing.T) {
	// "&eacute;" is pure ASCII before normalization; the gate must see the
	// decoded rune that would actually be drawn.
	a, err := NewPDFAssembler(nil)
	require.NoError(t, err)

	_, err = a.Assemble(t.Context(), testPlan("visit our caf&eacute;"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnsupportedGlyph)

	var glyphErr *errs.UnsupportedGlyphError
	require.ErrorAs(t, err, &glyphErr)
	assert.Equal(t, 'é', glyphErr.Rune)
}

func TestPDFAssembler_Assemble_EmptyTextSkipsTextPage(t *testing.T) {
	a, err := NewPDFAssembler(nil)
	require.NoError(t, err)

	images := []ports.PageImage{{Data: testPNG(t, 200, 300), MIME: "image/png"}}
	document, err := a.Assemble(t.Context(), testPlan(""), images)
	require.NoError(t, err)

	// Cover and the image page, no blank text page.
	assert.Equal(t, 2, pageCount(t, document))

	preview, err := a.Assemble(t.Context(), testPlan(""), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pageCount(t, preview))
}

func TestPDFAssembler_Assemble_UnsupportedImageType(t *testing.T) {
	a, err := NewPDFAssembler(nil)
	require.NoError(t, err)

	images := []ports.PageImage{{Data: []byte("BM...."), MIME: "image/bmp"}}
	_, err = a.Assemble(t.Context(), testPlan("body"), images)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGlyphChecker_CoreFontGate(t *testing.T) {
	checker, err := newGlyphChecker(nil)
	require.NoError(t, err)

	require.NoError(t, checker.check("plain ascii, with\nlayout\tcontrols"))

	err = checker.check("naïve")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnsupportedGlyph)

	var glyphErr *errs.UnsupportedGlyphError
	require.ErrorAs(t, err, &glyphErr)
	assert.Equal(t, 'ï', glyphErr.Rune)
}
