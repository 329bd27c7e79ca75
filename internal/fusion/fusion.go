// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fusion merges the candidate sets of every detector into one
// canonical, deduplicated entity list. The engine owns that list for the
// lifetime of one scan; a re-scan discards and recreates it.
package fusion

import (
	"sort"
	"strings"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
)

// minEntityLen is the minimum trimmed length of a fused entity. Shorter
// candidates are visual or single-character false positives and are dropped
// uniformly across all sources, manual additions included.
const minEntityLen = 3

// Fuse merges candidate sets in caller-determined order (e.g.
// statistical-then-pattern). Candidates shorter than three characters are
// discarded, duplicates collapse onto the first-seen instance's casing and
// metadata, and the result is stable-sorted by descending confidence.
func Fuse(sets ...[]detector.Entity) []detector.Entity {
	seen := make(map[string]struct{})
	var out []detector.Entity

	for _, set := range sets {
		for _, e := range set {
			if len(strings.TrimSpace(e.Text)) < minEntityLen {
				continue
			}
			key := detector.NormalizeKey(e.Text)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Manual wraps operator-added strings as entities. Manual entities always
// carry score 1.0 and participate in the same normalization and dedup pass,
// so a manual addition duplicating an existing finding is silently absorbed.
func Manual(texts []string) []detector.Entity {
	var out []detector.Entity
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, detector.Entity{
			Text:   t,
			Score:  1.0,
			Source: detector.SourceManual,
			Type:   detector.TypeUnknown,
		})
	}
	return out
}

// Degraded returns the names of detectors that did not run, in sorted order.
// An unavailable detector's empty candidate set is tolerated by Fuse; this
// surfaces the degradation to the caller instead of swallowing it as
// success.
func Degraded(results map[string]detector.Result) []string {
	var out []string
	for name, r := range results {
		if !r.Available {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
