// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package matcher re-locates canonical entities inside the positioned text
// of a rendered page and returns the geometric regions to black out. It has
// no dependency on detection provenance: a manually-added phrase and a
// tagger-found phrase are matched identically. Preview highlighting and
// commit-time redaction both go through Match; they must never diverge.
package matcher

import (
	"unicode"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
)

// charOrigin maps one normalized page character back to its source span and
// the rune offset within that span.
type charOrigin struct {
	span  int
	index int
}

// pageIndex is the whitespace-normalized page text with a per-character
// mapping back to span geometry. Spans may split entities mid-word; the
// index reassembles occurrences across consecutive spans.
type pageIndex struct {
	runes   []rune
	origins []charOrigin
	spans   []detector.PositionedSpan
	spanLen []int
}

// Match finds every occurrence of each entity's whitespace-normalized text
// on the page. The primary pass compares case-insensitively; if it yields
// zero occurrences for an entity, a stricter exact-case pass retries
// (case-folding misbehaves on some non-Latin and symbol-heavy strings).
// Every occurrence produces one region; redaction is exhaustive per page.
func Match(entities []detector.Entity, spans []detector.PositionedSpan) []detector.MatchRegion {
	idx := indexSpans(spans)

	var out []detector.MatchRegion
	for _, e := range entities {
		detector.MustValid(e)

		needle := []rune(detector.CollapseWhitespace(e.Text))
		positions := idx.find(needle, foldEqual)
		if len(positions) == 0 {
			positions = idx.find(needle, exactEqual)
		}
		for _, pos := range positions {
			out = append(out, detector.MatchRegion{
				Entity: e,
				Box:    idx.region(pos, len(needle)),
			})
		}
	}
	return out
}

// Unmatched reports the entities with zero regions on this page, so callers
// can warn the operator that a found item could not be located for
// redaction instead of silently succeeding.
func Unmatched(entities []detector.Entity, regions []detector.MatchRegion) []detector.Entity {
	matched := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		matched[detector.NormalizeKey(r.Entity.Text)] = struct{}{}
	}

	var out []detector.Entity
	for _, e := range entities {
		if _, ok := matched[detector.NormalizeKey(e.Text)]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// indexSpans builds the normalized page text. Whitespace runs, within or
// across spans, collapse to a single space attributed to the run's first
// character; leading and trailing whitespace disappears.
func indexSpans(spans []detector.PositionedSpan) *pageIndex {
	idx := &pageIndex{
		spans:   spans,
		spanLen: make([]int, len(spans)),
	}

	pendingSpace := false
	var spaceOrigin charOrigin

	for si, sp := range spans {
		runes := []rune(sp.Text)
		idx.spanLen[si] = len(runes)
		for ri, r := range runes {
			if unicode.IsSpace(r) {
				if len(idx.runes) > 0 && !pendingSpace {
					pendingSpace = true
					spaceOrigin = charOrigin{span: si, index: ri}
				}
				continue
			}
			if pendingSpace {
				idx.runes = append(idx.runes, ' ')
				idx.origins = append(idx.origins, spaceOrigin)
				pendingSpace = false
			}
			idx.runes = append(idx.runes, r)
			idx.origins = append(idx.origins, charOrigin{span: si, index: ri})
		}
	}
	return idx
}

func foldEqual(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}

func exactEqual(a, b rune) bool {
	return a == b
}

// find returns the start offsets of every occurrence of needle in the
// normalized text under the given rune comparison. Overlapping occurrences
// all count.
func (idx *pageIndex) find(needle []rune, eq func(a, b rune) bool) []int {
	if len(needle) == 0 || len(needle) > len(idx.runes) {
		return nil
	}
	var out []int
	for i := 0; i+len(needle) <= len(idx.runes); i++ {
		hit := true
		for j, nr := range needle {
			if !eq(idx.runes[i+j], nr) {
				hit = false
				break
			}
		}
		if hit {
			out = append(out, i)
		}
	}
	return out
}

// region computes the bounding geometry of the occurrence at start: the
// union of the contributing spans' boxes, each restricted to the matched
// characters.
func (idx *pageIndex) region(start, length int) detector.BoundingBox {
	type extent struct{ first, last int }
	spanExtents := make(map[int]*extent)
	var order []int

	for i := start; i < start+length; i++ {
		o := idx.origins[i]
		ext, ok := spanExtents[o.span]
		if !ok {
			spanExtents[o.span] = &extent{first: o.index, last: o.index}
			order = append(order, o.span)
			continue
		}
		if o.index < ext.first {
			ext.first = o.index
		}
		if o.index > ext.last {
			ext.last = o.index
		}
	}

	var box detector.BoundingBox
	for i, si := range order {
		ext := spanExtents[si]
		clipped := clipBox(idx.spans[si].Box, idx.spanLen[si], ext.first, ext.last)
		if i == 0 {
			box = clipped
		} else {
			box = box.Union(clipped)
		}
	}
	return box
}

// clipBox restricts a span's box to the rune range [first, last],
// apportioning width per rune.
func clipBox(b detector.BoundingBox, runeCount, first, last int) detector.BoundingBox {
	if runeCount <= 0 {
		return b
	}
	startFrac := float64(first) / float64(runeCount)
	endFrac := float64(last+1) / float64(runeCount)
	return detector.BoundingBox{
		X:      b.X + b.Width*startFrac,
		Y:      b.Y,
		Width:  b.Width * (endFrac - startFrac),
		Height: b.Height,
	}
}
