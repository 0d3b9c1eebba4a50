// Package assembler renders assembly plans into certified PDF documents.
// Composition is done with fpdf, the certification stamp and final validation
// with pdfcpu, and glyph coverage is checked against the embedded typeface
// before anything is drawn.
package assembler

import (
	"strings"

	"golang.org/x/net/html"
)

// blockBreakTags are the HTML elements whose boundaries become line breaks
// when operator rich text is normalized.
var blockBreakTags = map[string]bool{
	"br":  true,
	"p":   true,
	"div": true,
	"li":  true,
	"tr":  true,
	"h1":  true,
	"h2":  true,
	"h3":  true,
	"h4":  true,
}

// normalizeText flattens rich text into plain paragraphs: markup is stripped,
// block boundaries become newlines, entities are decoded and blank lines are
// dropped. Plain text without markup passes through unchanged, so callers do
// not need to know which form they were given.
func normalizeText(input string) []string {
	tokenizer := html.NewTokenizer(strings.NewReader(input))

	var builder strings.Builder
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}

		switch tokenType {
		case html.TextToken:
			builder.WriteString(tokenizer.Token().Data)
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if blockBreakTags[string(name)] {
				builder.WriteString("\n")
			}
		}
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(builder.String(), "\n") {
		line = strings.TrimSpace(collapseSpaces(line))
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// wrapLine breaks one paragraph into rendered lines using greedy word wrap.
// measure returns the rendered width of a string in the same unit as maxWidth.
// A single word wider than maxWidth gets a line of its own; character-level
// splitting would corrupt certified content.
func wrapLine(line string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}

	wrapped := make([]string, 0, 1)
	current := words[0]

	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) > maxWidth {
			wrapped = append(wrapped, current)
			current = word
			continue
		}
		current = candidate
	}

	return append(wrapped, current)
}

// layoutParagraphs wraps already-normalized paragraphs to the given width.
// Paragraphs are separated by an empty line, which the renderer turns into
// vertical space.
func layoutParagraphs(paragraphs []string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for i, paragraph := range paragraphs {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, wrapLine(paragraph, maxWidth, measure)...)
	}
	return lines
}

// layoutText normalizes the certified text and wraps every paragraph to the
// given width.
func layoutText(text string, maxWidth float64, measure func(string) float64) []string {
	return layoutParagraphs(normalizeText(text), maxWidth, measure)
}
