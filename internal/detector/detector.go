// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package detector defines the data model shared by every detection and
// redaction component: entities, tagged tokens, positioned page spans and
// match regions. Every producer emits the full Entity record at its
// boundary; a bare string never crosses between packages.
package detector

import (
	"fmt"
	"strings"
)

// Source identifies which producer created an entity.
type Source string

// Entity provenance values.
const (
	SourcePattern       Source = "pattern"
	SourceKeyword       Source = "keyword"
	SourceTagger        Source = "tagger"
	SourceHeuristicName Source = "heuristic-name"
	SourceFreeText      Source = "free-text"
	SourceManual        Source = "manual"
)

// Common coarse entity categories. Type is informational only and is never
// used for matching or deduplication.
const (
	TypePerson        = "person"
	TypeEmail         = "email"
	TypePhone         = "phone"
	TypeDate          = "date"
	TypeAccountNumber = "account-number"
	TypeCardNumber    = "card-number"
	TypeUnknown       = "unknown"
)

// Entity is a detected candidate: the exact substring to redact plus
// confidence and provenance. Entities are immutable once emitted into the
// fusion stage; a full re-scan discards and recreates the entire set.
type Entity struct {
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
	Source Source  `json:"source"`
	Type   string  `json:"type"`
}

// Result pairs a detector's candidate set with an availability flag, so an
// empty-but-available result is distinguishable from a detector that never
// ran.
type Result struct {
	Available bool     `json:"available"`
	Entities  []Entity `json:"entities"`
}

// TaggedToken is one sub-word classification token from an external
// statistical tagger using begin/inside tagging.
type TaggedToken struct {
	Text        string  `json:"text"`
	Tag         string  `json:"tag"`
	IsBeginning bool    `json:"isBeginning"`
	Score       float64 `json:"score"`
}

// BoundingBox is an axis-aligned rectangle in page coordinates.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Union returns the smallest box covering both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	x0 := min(b.X, o.X)
	y0 := min(b.Y, o.Y)
	x1 := max(b.X+b.Width, o.X+o.Width)
	y1 := max(b.Y+b.Height, o.Y+o.Height)
	return BoundingBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// PositionedSpan is one atomic run of text on a rendered page with its
// bounding geometry. Spans partition the page's visible text without
// overlap; concatenating them in reading order reconstructs the page's
// plain text.
type PositionedSpan struct {
	Text string      `json:"text"`
	Box  BoundingBox `json:"boundingBox"`
}

// MatchRegion is one occurrence of one entity on a page: the geometry to
// black out plus the entity it corresponds to. Multiple regions may
// reference the same entity.
type MatchRegion struct {
	Entity Entity      `json:"entity"`
	Box    BoundingBox `json:"boundingBox"`
}

// CollapseWhitespace trims s and collapses internal whitespace runs to a
// single space. It is the single normalization function shared by detection,
// fusion, preview highlighting and commit-time matching; preview and commit
// diverging on normalization is a known defect class.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey returns the deduplication key for an entity text: lower-cased,
// trimmed, whitespace-collapsed. Idempotent.
func NormalizeKey(s string) string {
	return strings.ToLower(CollapseWhitespace(s))
}

// Validate reports invariant violations on an entity. Empty text or a score
// outside [0,1] is a programmer error, not bad input.
func (e Entity) Validate() error {
	if strings.TrimSpace(e.Text) == "" {
		return fmt.Errorf("entity has empty text (source=%s)", e.Source)
	}
	if e.Score < 0 || e.Score > 1 {
		return fmt.Errorf("entity %q has score %v outside [0,1]", e.Text, e.Score)
	}
	return nil
}

// MustValid panics if e violates the entity invariants. Components that only
// consume already-fused entities (the redaction matcher, the renderers) call
// this instead of coercing bad values into defaults.
func MustValid(e Entity) {
	if err := e.Validate(); err != nil {
		panic(err)
	}
}
