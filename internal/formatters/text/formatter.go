// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/formatters"
)

// Formatter renders scan reports as human-readable colored text.
type Formatter struct {
	high   *color.Color
	medium *color.Color
	low    *color.Color
	header *color.Color
	warn   *color.Color
}

// NewFormatter creates a text formatter.
func NewFormatter() *Formatter {
	return &Formatter{
		high:   color.New(color.FgRed),
		medium: color.New(color.FgYellow),
		low:    color.New(color.FgGreen),
		header: color.New(color.FgWhite, color.Bold),
		warn:   color.New(color.FgMagenta),
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

// Format renders the report. Entities arrive sorted by descending
// confidence from fusion; the order is preserved.
func (f *Formatter) Format(report formatters.Report, options formatters.Options) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder

	if report.Document != "" {
		b.WriteString(f.header.Sprintf("Document: %s\n", report.Document))
	}

	if len(report.Entities) == 0 {
		b.WriteString("No sensitive data found.\n")
	} else {
		b.WriteString(f.header.Sprintf("Found %d entities:\n", len(report.Entities)))
		for _, e := range report.Entities {
			b.WriteString(f.formatEntity(e, options))
		}
	}

	if len(report.DegradedDetectors) > 0 {
		b.WriteString(f.warn.Sprintf("Warning: detectors unavailable: %s\n",
			strings.Join(report.DegradedDetectors, ", ")))
	}

	if report.Duration > 0 {
		b.WriteString(fmt.Sprintf("Scan completed in %v\n", report.Duration.Round(1e6)))
	}
	return b.String(), nil
}

func (f *Formatter) formatEntity(e detector.Entity, options formatters.Options) string {
	text := e.Text
	if !options.ShowText {
		text = formatters.MaskText(e.Text)
	}

	line := fmt.Sprintf("  %-22s %s", fmt.Sprintf("[%s]", e.Type), text)
	if options.Verbose {
		line += fmt.Sprintf("  (source=%s, score=%.2f)", e.Source, e.Score)
	}

	return f.scoreColor(e.Score).Sprintln(line)
}

// scoreColor maps confidence to the conventional traffic-light coloring.
func (f *Formatter) scoreColor(score float64) *color.Color {
	switch {
	case score >= 0.9:
		return f.high
	case score >= 0.6:
		return f.medium
	default:
		return f.low
	}
}
