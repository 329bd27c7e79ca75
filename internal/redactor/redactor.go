// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package redactor turns a canonical entity list into a redacted copy of a
// PDF. It never modifies the input file: the copy is validated, matched
// page by page, scrubbed of identifying metadata and handed to a region
// renderer together with the geometric match set.
package redactor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/audit"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/matcher"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/observability"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/pagetext"
)

// PageRegions is the match set of one page, handed to the region renderer.
type PageRegions struct {
	Page    int                    `json:"page"`
	Regions []detector.MatchRegion `json:"regions"`
}

// RegionRenderer draws opaque overlays for the matched regions into the
// output document. Overlapping regions for the same entity must not be
// deduplicated away; rendering idempotently over the same pixels is
// expected.
type RegionRenderer interface {
	Render(pdfPath string, pages []PageRegions) error
}

// Report summarizes one redaction run.
type Report struct {
	InputHash      string            `json:"input_hash"`
	OutputPath     string            `json:"output_path"`
	PageCount      int               `json:"page_count"`
	RegionCount    int               `json:"region_count"`
	Unmatched      []detector.Entity `json:"unmatched,omitempty"`
	UnmatchedCount int               `json:"unmatched_count"`
	Duration       time.Duration     `json:"-"`
	Pages          []PageRegions     `json:"pages"`
}

// Redactor orchestrates matching and rendering for PDF documents.
type Redactor struct {
	conf     *model.Configuration
	observer *observability.Observer
	auditLog *audit.Logger
	renderer RegionRenderer
}

// New creates a Redactor. A nil renderer defaults to the overlay-map
// renderer; observer and audit logger may be nil.
func New(observer *observability.Observer, auditLog *audit.Logger, renderer RegionRenderer) *Redactor {
	if renderer == nil {
		renderer = &OverlayMapRenderer{}
	}
	return &Redactor{
		conf:     model.NewDefaultConfiguration(),
		observer: observer,
		auditLog: auditLog,
		renderer: renderer,
	}
}

// RedactFile produces a redacted copy of inputPath under outputDir and
// returns the run report. Entities the matcher could not locate on any page
// are reported, never silently dropped.
func (r *Redactor) RedactFile(inputPath, outputDir string, entities []detector.Entity) (*Report, error) {
	finish := r.observer.StartTiming("redactor", "redact_file", inputPath)
	start := time.Now()

	if err := api.ValidateFile(inputPath, r.conf); err != nil {
		finish(false, map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("invalid PDF %s: %w", inputPath, err)
	}

	inputHash, err := audit.FileHash(inputPath)
	if err != nil {
		inputHash = "unknown"
	}
	r.auditLog.Log("REDACTION_START",
		fmt.Sprintf("file_hash=%s, entities=%d", inputHash, len(entities)))

	doc, err := pagetext.Extract(inputPath)
	if err != nil {
		finish(false, map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("extracting page text: %w", err)
	}

	pages := matchPages(entities, doc.Pages)

	var allRegions []detector.MatchRegion
	regionCount := 0
	for _, p := range pages {
		regionCount += len(p.Regions)
		allRegions = append(allRegions, p.Regions...)
	}
	unmatched := matcher.Unmatched(entities, allRegions)

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		finish(false, map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	outputPath := filepath.Join(outputDir, outputName(inputPath))

	if err := r.writeRedactedCopy(inputPath, outputPath, pages); err != nil {
		finish(false, map[string]any{"error": err.Error()})
		return nil, err
	}

	r.auditLog.Log("REDACTION_COMPLETE",
		fmt.Sprintf("file_hash=%s, redactions=%d, unmatched=%d",
			inputHash, regionCount, len(unmatched)))
	finish(true, map[string]any{
		"region_count":    regionCount,
		"unmatched_count": len(unmatched),
	})

	return &Report{
		InputHash:      inputHash,
		OutputPath:     outputPath,
		PageCount:      len(doc.Pages),
		RegionCount:    regionCount,
		Unmatched:      unmatched,
		UnmatchedCount: len(unmatched),
		Duration:       time.Since(start),
		Pages:          pages,
	}, nil
}

// matchPages runs the matcher over every page. Pages are independent: each
// match call reads only its own spans and the finalized entity list, so
// they run concurrently.
func matchPages(entities []detector.Entity, docPages []pagetext.Page) []PageRegions {
	type result struct {
		idx     int
		regions []detector.MatchRegion
	}

	results := make(chan result, len(docPages))
	for i, page := range docPages {
		go func(idx int, spans []detector.PositionedSpan) {
			results <- result{idx: idx, regions: matcher.Match(entities, spans)}
		}(i, page.Spans)
	}

	pages := make([]PageRegions, len(docPages))
	for range docPages {
		res := <-results
		pages[res.idx] = PageRegions{
			Page:    docPages[res.idx].Number,
			Regions: res.regions,
		}
	}
	return pages
}

// writeRedactedCopy copies the input, rewrites it through pdfcpu with
// scrubbed metadata and invokes the region renderer on the copy.
func (r *Redactor) writeRedactedCopy(inputPath, outputPath string, pages []PageRegions) error {
	if err := copyFile(inputPath, outputPath); err != nil {
		return fmt.Errorf("copying PDF: %w", err)
	}

	ctx, err := api.ReadContextFile(outputPath)
	if err != nil {
		return fmt.Errorf("reading PDF context: %w", err)
	}
	if err := scrubMetadata(ctx); err != nil {
		return fmt.Errorf("scrubbing metadata: %w", err)
	}
	if err := api.WriteContextFile(ctx, outputPath); err != nil {
		return fmt.Errorf("writing redacted PDF: %w", err)
	}

	if err := r.renderer.Render(outputPath, pages); err != nil {
		return fmt.Errorf("rendering regions: %w", err)
	}
	return nil
}

// scrubMetadata replaces identifying entries in the document information
// dictionary. The XRefTable Title/Author convenience fields only mirror this
// dict for reporting; the write path serializes the dict itself, so the dict
// is what must change. A document without an Info dict carries nothing to
// scrub.
func scrubMetadata(ctx *model.Context) error {
	if ctx.XRefTable.Info == nil {
		return nil
	}
	d, err := ctx.DereferenceDict(*ctx.XRefTable.Info)
	if err != nil || d == nil {
		return err
	}
	d.Update("Title", types.StringLiteral("Redacted Document"))
	d.Update("Author", types.StringLiteral("Anonymous"))
	d.Update("Subject", types.StringLiteral("Redacted Content"))
	d.Update("Creator", types.StringLiteral("Zero-Trust Redactor"))
	d.Update("Producer", types.StringLiteral("Zero-Trust Redactor"))
	return nil
}

// outputName builds a unique name for the redacted copy so concurrent runs
// never collide.
func outputName(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	id := uuid.New().String()[:8]
	return fmt.Sprintf("%s_redacted_%s%s", base[:len(base)-len(ext)], id, ext)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
