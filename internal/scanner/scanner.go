// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package scanner implements the rule-based detection pass: the universal PII
// battery, name-extraction heuristics, per-preset patterns, keyword-context
// extraction and user-supplied custom keywords. Scanning is a pure function
// over its inputs; it performs no I/O and never fails on malformed text.
package scanner

import (
	"regexp"
	"strings"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/patterns"
)

const (
	// ruleConfidence is the fixed confidence for pattern and keyword matches.
	ruleConfidence = 0.92

	// nameConfidence is the fixed confidence for heuristic name matches.
	nameConfidence = 0.90

	// contextWindow is how far past a keyword occurrence the value
	// extraction looks.
	contextWindow = 100

	// minCandidateLen is the minimum trimmed length of a scanner candidate.
	minCandidateLen = 2

	// minPresetMatchLen is the minimum length of a preset pattern match.
	minPresetMatchLen = 3
)

// valueDelimiters end the captured value run after a keyword occurrence.
const valueDelimiters = ":=\n\r,;"

// Scanner applies a pattern library to raw text.
type Scanner struct {
	lib *patterns.Library

	titledName  *regexp.Regexp
	labeledName *regexp.Regexp
	lastFirst   *regexp.Regexp
	bareName    *regexp.Regexp
}

// New creates a Scanner over the given library.
func New(lib *patterns.Library) *Scanner {
	// Name words are separated by spaces or tabs only; a capture must
	// never run past the end of its line.
	return &Scanner{
		lib:         lib,
		titledName:  regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Miss|Dr|Prof)\.?[ \t]+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,2})\b`),
		labeledName: regexp.MustCompile(`\b(?:Name|Patient|Customer|Employee|Applicant|Holder|Attn)[ \t]*:[ \t]*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,2})`),
		lastFirst:   regexp.MustCompile(`\b[A-Z][a-z]+,[ \t]*[A-Z][a-z]+\b`),
		bareName:    regexp.MustCompile(`\b[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,2}\b`),
	}
}

// Scan runs every rule pass over text. Unknown preset ids are skipped
// silently; detection degrades rather than aborts.
func (s *Scanner) Scan(text string, presetIDs []string, customKeywords []string) []detector.Entity {
	var out []detector.Entity

	out = append(out, s.universalMatches(text)...)
	out = append(out, s.nameHeuristics(text)...)

	for _, id := range presetIDs {
		preset, ok := s.lib.Preset(id)
		if !ok {
			continue
		}
		out = append(out, s.presetMatches(text, preset)...)
		out = append(out, s.keywordContext(text, preset.Keywords)...)
	}

	out = append(out, s.customKeywordMatches(text, customKeywords)...)

	return dedupe(out)
}

// universalMatches applies the fixed PII battery. Every pattern runs
// independently; overlapping matches from different patterns are all kept.
func (s *Scanner) universalMatches(text string) []detector.Entity {
	var out []detector.Entity
	for _, p := range s.lib.Universal() {
		for _, m := range p.Regex.FindAllString(text, -1) {
			out = append(out, detector.Entity{
				Text:   strings.TrimSpace(m),
				Score:  ruleConfidence,
				Source: detector.SourcePattern,
				Type:   p.Type,
			})
		}
	}
	return out
}

// nameHeuristics extracts person-name candidates from titled, labeled,
// "Last, First" and bare capitalized forms. A candidate containing a
// stop word is rejected even when it matches the shape.
func (s *Scanner) nameHeuristics(text string) []detector.Entity {
	var out []detector.Entity

	emit := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || s.lib.ContainsStopWord(name) {
			return
		}
		out = append(out, detector.Entity{
			Text:   name,
			Score:  nameConfidence,
			Source: detector.SourceHeuristicName,
			Type:   detector.TypePerson,
		})
	}

	for _, m := range s.titledName.FindAllStringSubmatch(text, -1) {
		emit(m[1])
	}
	for _, m := range s.labeledName.FindAllStringSubmatch(text, -1) {
		emit(m[1])
	}
	for _, m := range s.lastFirst.FindAllString(text, -1) {
		emit(m)
	}
	for _, m := range s.bareName.FindAllString(text, -1) {
		emit(m)
	}
	return out
}

// presetMatches applies one preset's ordered patterns, keeping matches of
// length >= 3.
func (s *Scanner) presetMatches(text string, preset patterns.Preset) []detector.Entity {
	var out []detector.Entity
	for _, re := range preset.Patterns {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			if len(m) < minPresetMatchLen {
				continue
			}
			out = append(out, detector.Entity{
				Text:   m,
				Score:  ruleConfidence,
				Source: detector.SourcePattern,
				Type:   detector.TypeUnknown,
			})
		}
	}
	return out
}

// keywordContext extracts the value following each keyword occurrence: the
// token run inside the next ~100 characters, cut at the first delimiter.
// Every occurrence of the keyword contributes, not just the first.
func (s *Scanner) keywordContext(text string, keywords []string) []detector.Entity {
	var out []detector.Entity
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			value := extractValue(text, loc[1])
			if len(value) <= minCandidateLen ||
				strings.EqualFold(value, kw) ||
				s.lib.IsStopWord(value) {
				continue
			}
			out = append(out, detector.Entity{
				Text:   value,
				Score:  ruleConfidence,
				Source: detector.SourceKeyword,
				Type:   detector.TypeUnknown,
			})
		}
	}
	return out
}

// extractValue captures the delimited value run starting after a keyword
// occurrence ending at offset end.
func extractValue(text string, end int) string {
	stop := min(end+contextWindow, len(text))
	window := text[end:stop]

	// Skip the separator between keyword and value.
	window = strings.TrimLeft(window, " \t:=#-")

	if i := strings.IndexAny(window, valueDelimiters); i >= 0 {
		window = window[:i]
	}

	// Trailing sentence punctuation is not part of the value.
	return strings.Trim(strings.TrimSpace(window), ".")
}

// customKeywordMatches emits every case-preserved occurrence of each
// user-supplied keyword. The keyword itself is redacted verbatim, not a
// nearby value.
func (s *Scanner) customKeywordMatches(text string, keywords []string) []detector.Entity {
	var out []detector.Entity
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(kw))
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			out = append(out, detector.Entity{
				Text:   text[loc[0]:loc[1]],
				Score:  ruleConfidence,
				Source: detector.SourceKeyword,
				Type:   detector.TypeUnknown,
			})
		}
	}
	return out
}

// dedupe collapses candidates sharing a normalized key (first seen wins) and
// drops candidates shorter than two characters.
func dedupe(entities []detector.Entity) []detector.Entity {
	seen := make(map[string]struct{}, len(entities))
	out := make([]detector.Entity, 0, len(entities))
	for _, e := range entities {
		if len(strings.TrimSpace(e.Text)) < minCandidateLen {
			continue
		}
		key := detector.NormalizeKey(e.Text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
