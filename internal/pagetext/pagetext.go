// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pagetext extracts the positioned, per-page text representation the
// redaction matcher searches over. Glyph runs from the PDF reader are merged
// into word spans with bounding geometry; zero-width spacer spans keep the
// invariant that concatenating spans in reading order reconstructs the
// page's plain text.
package pagetext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
)

// defaultFontSize stands in when the reader reports no size for a glyph.
const defaultFontSize = 12.0

// Page is the positioned text of one rendered page.
type Page struct {
	Number int
	Spans  []detector.PositionedSpan
}

// Text returns the page's plain text, the concatenation of its spans in
// reading order.
func (p Page) Text() string {
	var b strings.Builder
	for _, s := range p.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Document is the extracted representation of a whole PDF: per-page spans
// for matching plus the flattened text detection runs over.
type Document struct {
	Path      string
	Pages     []Page
	PlainText string
}

// Extract reads a PDF and builds its positioned page representation.
// Pages whose row extraction fails degrade to plain text without geometry;
// those pages still contribute to detection but yield no match regions.
func Extract(filePath string) (*Document, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	doc := &Document{Path: filePath}
	var plain strings.Builder

	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		p := r.Page(pageNum)
		if p.V.IsNull() {
			continue
		}

		page := Page{Number: pageNum}
		rows, err := p.GetTextByRow()
		if err == nil {
			page.Spans = spansFromRows(rows)
		} else {
			// No geometry available; keep the text for detection.
			text, err := p.GetPlainText(nil)
			if err != nil {
				continue
			}
			page.Spans = []detector.PositionedSpan{{Text: text}}
		}

		doc.Pages = append(doc.Pages, page)
		if plain.Len() > 0 {
			plain.WriteString("\n")
		}
		plain.WriteString(page.Text())
	}

	doc.PlainText = plain.String()
	return doc, nil
}

// spansFromRows merges glyph runs into word spans. Rows are ordered top to
// bottom, glyphs left to right; a horizontal gap wider than 20% of the font
// size starts a new word.
func spansFromRows(rows pdf.Rows) []detector.PositionedSpan {
	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	// PDF Y grows bottom-up: higher Y is higher on the page.
	sort.Slice(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) > averageY(sorted[j].Content)
	})

	var spans []detector.PositionedSpan
	for _, row := range sorted {
		rowSpans := spansFromRow(row.Content)
		if len(rowSpans) == 0 {
			continue
		}
		spans = append(spans, rowSpans...)

		last := rowSpans[len(rowSpans)-1].Box
		spans = append(spans, detector.PositionedSpan{
			Text: "\n",
			Box:  detector.BoundingBox{X: last.X + last.Width, Y: last.Y, Height: last.Height},
		})
	}
	return spans
}

// spansFromRow assembles one row's glyphs into word spans separated by
// zero-width space spans.
func spansFromRow(glyphs []pdf.Text) []detector.PositionedSpan {
	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var spans []detector.PositionedSpan
	var word strings.Builder
	var box detector.BoundingBox

	flush := func() {
		if word.Len() == 0 {
			return
		}
		spans = append(spans, detector.PositionedSpan{Text: word.String(), Box: box})
		spans = append(spans, detector.PositionedSpan{
			Text: " ",
			Box:  detector.BoundingBox{X: box.X + box.Width, Y: box.Y, Height: box.Height},
		})
		word.Reset()
	}

	for i, g := range sorted {
		if word.Len() == 0 {
			box = glyphBox(g)
		} else {
			box = box.Union(glyphBox(g))
		}
		word.WriteString(g.S)

		if i+1 < len(sorted) {
			gap := sorted[i+1].X - (g.X + g.W)
			if gap > wordGapThreshold(g.FontSize) {
				flush()
			}
		}
	}
	flush()

	// The spacer after the row's last word is replaced by the row's
	// newline span.
	if len(spans) > 0 {
		spans = spans[:len(spans)-1]
	}
	return spans
}

// wordGapThreshold is the horizontal gap treated as a word boundary.
func wordGapThreshold(fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = defaultFontSize
	}
	return fontSize * 0.2
}

func glyphBox(g pdf.Text) detector.BoundingBox {
	height := g.FontSize
	if height <= 0 {
		height = defaultFontSize
	}
	return detector.BoundingBox{X: g.X, Y: g.Y, Width: g.W, Height: height}
}

func averageY(glyphs []pdf.Text) float64 {
	if len(glyphs) == 0 {
		return 0
	}
	var total float64
	for _, g := range glyphs {
		total += g.Y
	}
	return total / float64(len(glyphs))
}
