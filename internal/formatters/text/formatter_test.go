// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"strings"
	"testing"
	"time"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/formatters"
)

func sampleReport() formatters.Report {
	return formatters.Report{
		Document: "statement.pdf",
		Entities: []detector.Entity{
			{Text: "john@example.com", Score: 0.92, Source: detector.SourcePattern, Type: "email"},
			{Text: "John Smith", Score: 0.90, Source: detector.SourceHeuristicName, Type: detector.TypePerson},
		},
		Duration: 42 * time.Millisecond,
	}
}

func TestFormatMasksByDefault(t *testing.T) {
	out, err := NewFormatter().Format(sampleReport(), formatters.Options{NoColor: true})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "john@example.com") {
		t.Error("entity text printed verbatim without ShowText")
	}
	if !strings.Contains(out, "jo***om") {
		t.Errorf("masked text missing from output:\n%s", out)
	}
	if !strings.Contains(out, "Found 2 entities") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "statement.pdf") {
		t.Errorf("document name missing:\n%s", out)
	}
}

func TestFormatShowText(t *testing.T) {
	out, err := NewFormatter().Format(sampleReport(), formatters.Options{NoColor: true, ShowText: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "john@example.com") {
		t.Errorf("verbatim text missing with ShowText:\n%s", out)
	}
}

func TestFormatVerbose(t *testing.T) {
	out, err := NewFormatter().Format(sampleReport(), formatters.Options{NoColor: true, Verbose: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "source=pattern") || !strings.Contains(out, "score=0.92") {
		t.Errorf("provenance missing in verbose output:\n%s", out)
	}
}

func TestFormatEmptyAndDegraded(t *testing.T) {
	report := formatters.Report{DegradedDetectors: []string{"tagger"}}
	out, err := NewFormatter().Format(report, formatters.Options{NoColor: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No sensitive data found.") {
		t.Errorf("empty-result line missing:\n%s", out)
	}
	if !strings.Contains(out, "detectors unavailable: tagger") {
		t.Errorf("degradation warning missing:\n%s", out)
	}
}
