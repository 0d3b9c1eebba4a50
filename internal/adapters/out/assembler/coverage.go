package assembler

import (
	"golang.org/x/image/font/sfnt"

	"certify/internal/pkg/errs"
)

// glyphChecker verifies that a typeface can encode every rune of the certified
// text. Assembly must fail loudly instead of shipping a document with tofu
// boxes in place of certified content.
type glyphChecker struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

// newGlyphChecker parses the embedded typeface. data may be nil when the
// assembler runs on the built-in core font; coverage is then limited to the
// ASCII range that font guarantees.
func newGlyphChecker(data []byte) (*glyphChecker, error) {
	if data == nil {
		return &glyphChecker{}, nil
	}

	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}

	return &glyphChecker{font: parsed}, nil
}

// check returns errs.ErrUnsupportedGlyph for the first rune the typeface
// cannot encode. Control characters used for layout are exempt.
func (c *glyphChecker) check(text string) error {
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}

		if c.font == nil {
			if r >= 0x80 {
				return errs.NewUnsupportedGlyphError(r)
			}
			continue
		}

		index, err := c.font.GlyphIndex(&c.buf, r)
		if err != nil {
			return err
		}
		if index == 0 {
			return errs.NewUnsupportedGlyphError(r)
		}
	}

	return nil
}
