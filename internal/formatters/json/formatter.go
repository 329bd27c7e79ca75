// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/formatters"
)

// Formatter renders scan reports as indented JSON.
type Formatter struct{}

// NewFormatter creates a JSON formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// jsonReport adds the fields the structured format carries beyond the
// shared report.
type jsonReport struct {
	formatters.Report
	EntityCount int   `json:"entity_count"`
	DurationMs  int64 `json:"duration_ms"`
}

func (f *Formatter) Format(report formatters.Report, options formatters.Options) (string, error) {
	out := jsonReport{
		Report:      report,
		EntityCount: len(report.Entities),
		DurationMs:  report.Duration.Milliseconds(),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	return string(data), nil
}
