// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package patterns holds the static pattern library: the universal PII
// battery, the per-document-type presets and the stop-word table. A Library
// is immutable after construction and safe for concurrent scans; all
// matching goes through stateless match-all calls.
package patterns

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// UniversalPattern is one entry of the preset-independent PII battery.
type UniversalPattern struct {
	Name  string
	Type  string
	Regex *regexp.Regexp
}

// Preset is a named document-type profile: ordered patterns, case-insensitive
// trigger keywords and informational context clues.
type Preset struct {
	ID           string
	Name         string
	Patterns     []*regexp.Regexp
	Keywords     []string
	ContextClues []string
}

// PresetSpec is the uncompiled form of a preset, as it appears in a config
// file.
type PresetSpec struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Patterns     []string `yaml:"patterns"`
	Keywords     []string `yaml:"keywords"`
	ContextClues []string `yaml:"context_clues"`
}

// Library is the compiled pattern catalog handed to the rule scanner.
type Library struct {
	universal []UniversalPattern
	presets   map[string]Preset
	stopWords map[string]struct{}
}

// CustomPresetID names the preset that carries no built-in data and is
// populated only from user-entered keywords.
const CustomPresetID = "custom"

// NewLibrary compiles the built-in catalog.
func NewLibrary() *Library {
	lib := &Library{
		presets:   make(map[string]Preset),
		stopWords: make(map[string]struct{}),
	}
	lib.universal = compileUniversal()

	for _, p := range builtinPresets() {
		lib.presets[p.ID] = p
	}

	for _, w := range stopWordList {
		lib.stopWords[w] = struct{}{}
	}
	return lib
}

// Universal returns the preset-independent PII battery.
func (l *Library) Universal() []UniversalPattern {
	return l.universal
}

// Preset looks up a preset by id.
func (l *Library) Preset(id string) (Preset, bool) {
	p, ok := l.presets[id]
	return p, ok
}

// PresetIDs returns all known preset ids, sorted.
func (l *Library) PresetIDs() []string {
	ids := make([]string, 0, len(l.presets))
	for id := range l.presets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsStopWord reports whether s (case-insensitive) is a stop word. Multi-word
// phrases are stop words when every word is one.
func (l *Library) IsStopWord(s string) bool {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if _, ok := l.stopWords[strings.Trim(f, ".,:;")]; !ok {
			return false
		}
	}
	return true
}

// ContainsStopWord reports whether any word of s is a stop word. Name-shaped
// candidates use this stricter test: one common word is enough to reject a
// capitalized run.
func (l *Library) ContainsStopWord(s string) bool {
	for _, f := range strings.Fields(strings.ToLower(s)) {
		if _, ok := l.stopWords[strings.Trim(f, ".,:;")]; ok {
			return true
		}
	}
	return false
}

// Merge compiles spec and adds it to the library, replacing a preset with the
// same id. The custom preset's built-in emptiness is an invariant and cannot
// be redefined.
func (l *Library) Merge(spec PresetSpec) error {
	if spec.ID == "" {
		return fmt.Errorf("preset has empty id")
	}
	if spec.ID == CustomPresetID {
		return fmt.Errorf("preset %q cannot be redefined", CustomPresetID)
	}
	p := Preset{
		ID:           spec.ID,
		Name:         spec.Name,
		Keywords:     spec.Keywords,
		ContextClues: spec.ContextClues,
	}
	for _, raw := range spec.Patterns {
		re, err := regexp.Compile(raw)
		if err != nil {
			return fmt.Errorf("preset %q: pattern %q: %w", spec.ID, raw, err)
		}
		p.Patterns = append(p.Patterns, re)
	}
	l.presets[spec.ID] = p
	return nil
}
