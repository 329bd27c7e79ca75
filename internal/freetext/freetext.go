// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package freetext parses the loosely-structured list returned by an
// external generative extractor into candidates. It strips list and markup
// noise but performs no validation of content: downstream fusion and
// deduplication are the sole correctness backstop.
package freetext

import (
	"regexp"
	"strings"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
)

// NoResultsSentinel is the designated "nothing found" marker the extractor
// is prompted to return.
const NoResultsSentinel = "NO_PII_FOUND"

// extractorConfidence is the fixed confidence attached to free-text
// candidates; the extractor reports no per-item score.
const extractorConfidence = 0.85

// listMarker strips leading bullet and enumeration markers.
var listMarker = regexp.MustCompile(`^\s*(?:[-•*]+|\d+[.)])\s*`)

// negativePhrases are whole-item responses meaning "nothing found".
var negativePhrases = []string{
	"no pii",
	"no pii found",
	"none",
	"none found",
	"nothing found",
	"no personal information",
	"no sensitive data",
	"n/a",
}

// Parse splits a raw extractor response on newlines and commas and returns
// the cleaned items as entities.
func Parse(raw string) []detector.Entity {
	items := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})

	var out []detector.Entity
	for _, item := range items {
		text := cleanItem(item)
		if text == "" || isNegative(text) || isCategoryLabel(text) {
			continue
		}
		out = append(out, detector.Entity{
			Text:   text,
			Score:  extractorConfidence,
			Source: detector.SourceFreeText,
			Type:   detector.TypeUnknown,
		})
	}
	return out
}

// cleanItem strips list markers and wrapping quotes.
func cleanItem(item string) string {
	item = listMarker.ReplaceAllString(item, "")
	item = strings.TrimSpace(item)
	item = strings.Trim(item, "\"'`")
	return strings.TrimSpace(item)
}

// isNegative reports whether the item is the sentinel or a negative-result
// phrase.
func isNegative(text string) bool {
	if strings.EqualFold(text, NoResultsSentinel) {
		return true
	}
	lower := strings.ToLower(text)
	for _, phrase := range negativePhrases {
		if lower == phrase {
			return true
		}
	}
	return false
}

// isCategoryLabel reports whether the item is a bare category header like
// "Names:" rather than a value.
func isCategoryLabel(text string) bool {
	return strings.HasSuffix(text, ":")
}
