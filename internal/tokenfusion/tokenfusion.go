// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package tokenfusion reconstructs contiguous entity spans from the sub-word
// classification tokens of an external statistical tagger. The begin/inside
// transition logic is an explicit three-rule state machine (start, extend,
// flush-and-start) so the merge rules are independently testable.
package tokenfusion

import (
	"strings"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
)

const (
	// scoreFloor drops tagger tokens below this confidence before
	// accumulation.
	scoreFloor = 0.5

	// outsideTag marks tokens outside any entity span.
	outsideTag = "O"

	// subwordMarker prefixes continuation pieces of the previous whole word.
	subwordMarker = "##"
)

// accumulator is the in-progress entity span.
type accumulator struct {
	typ   string
	text  string
	score float64
}

// Fuse merges an ordered token stream into entities. The accumulator's score
// is the running maximum of its constituents: a single confident sub-token is
// enough to trust the merged span.
func Fuse(tokens []detector.TaggedToken) []detector.Entity {
	var out []detector.Entity
	var acc accumulator

	flush := func() {
		// Single-character fragments are tokenizer noise, not entities.
		if len(acc.text) > 1 {
			out = append(out, detector.Entity{
				Text:   acc.text,
				Score:  acc.score,
				Source: detector.SourceTagger,
				Type:   acc.typ,
			})
		}
		acc = accumulator{}
	}

	for _, tok := range tokens {
		if tok.Score < scoreFloor {
			continue
		}
		typ := entityType(tok.Tag)
		if typ == "" {
			continue
		}

		switch {
		case beginsSpan(tok) || acc.text == "":
			// Rule 1: start a new entity (flushing any previous one).
			flush()
			acc = accumulator{typ: typ, text: pieceText(tok.Text), score: tok.Score}

		case typ != acc.typ:
			// Rule 3: flush-and-start. Tagger output is not always
			// internally consistent; a continuation tagged with a
			// different type must not be concatenated onto the
			// previous entity.
			flush()
			acc = accumulator{typ: typ, text: pieceText(tok.Text), score: tok.Score}

		default:
			// Rule 2: extend. Sub-word pieces join without a space,
			// whole-word continuations with a single space.
			if strings.HasPrefix(tok.Text, subwordMarker) {
				acc.text += strings.TrimPrefix(tok.Text, subwordMarker)
			} else {
				acc.text += " " + tok.Text
			}
			acc.score = max(acc.score, tok.Score)
		}
	}

	flush()
	return out
}

// beginsSpan reports whether a token opens a new span, either by explicit
// mark or by a "B-" tag prefix.
func beginsSpan(tok detector.TaggedToken) bool {
	return tok.IsBeginning || strings.HasPrefix(tok.Tag, "B-")
}

// entityType strips the begin/inside prefix from a tag. Outside and empty
// tags yield "".
func entityType(tag string) string {
	if tag == "" || tag == outsideTag {
		return ""
	}
	tag = strings.TrimPrefix(tag, "B-")
	tag = strings.TrimPrefix(tag, "I-")
	if tag == outsideTag {
		return ""
	}
	return tag
}

// pieceText strips the sub-word marker when a continuation piece opens a new
// accumulator.
func pieceText(text string) string {
	return strings.TrimPrefix(text, subwordMarker)
}
