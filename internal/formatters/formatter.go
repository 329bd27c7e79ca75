// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package formatters renders scan reports for output. Formatters are
// registered by name; the CLI and the web server pick one by the user's
// format choice.
package formatters

import (
	"sort"
	"time"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
)

// Report is the result of one detection scan, ready for presentation.
type Report struct {
	Document          string            `json:"document,omitempty"`
	Entities          []detector.Entity `json:"entities"`
	DegradedDetectors []string          `json:"degraded_detectors,omitempty"`
	Duration          time.Duration     `json:"-"`
}

// Options configures formatter output.
type Options struct {
	// NoColor disables colored output.
	NoColor bool

	// Verbose includes provenance details per entity.
	Verbose bool

	// ShowText prints entity text verbatim instead of masked.
	ShowText bool
}

// Formatter renders a scan report.
type Formatter interface {
	Format(report Report, options Options) (string, error)
	Name() string
	FileExtension() string
}

// Registry holds the registered formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Register adds a formatter under its name.
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Name()] = f
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	f, ok := r.formatters[name]
	return f, ok
}

// List returns the registered formatter names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MaskText hides the middle of an entity's text for display: enough to
// recognize the finding without reproducing it in terminal scrollback.
func MaskText(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return "***"
	}
	if len(runes) <= 4 {
		return string(runes[:1]) + "***"
	}
	return string(runes[:2]) + "***" + string(runes[len(runes)-2:])
}
