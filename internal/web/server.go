// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package web exposes the detection and redaction pipeline over a local
// HTTP API. All processing is local; documents live in uniquely-named temp
// files for the duration of one request and are removed immediately after.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/audit"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/config"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/freetext"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/fusion"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/observability"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/pagetext"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/patterns"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/redactor"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/scanner"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/tokenfusion"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/version"
)

// maxUploadBytes bounds /redact uploads.
const maxUploadBytes = 64 << 20

// Server wires the engine components behind HTTP handlers.
type Server struct {
	cfg      *config.Config
	lib      *patterns.Library
	scanner  *scanner.Scanner
	redactor *redactor.Redactor
	observer *observability.Observer
	auditLog *audit.Logger
}

// NewServer creates a Server over an already-merged pattern library.
func NewServer(cfg *config.Config, lib *patterns.Library, observer *observability.Observer, auditLog *audit.Logger) *Server {
	return &Server{
		cfg:      cfg,
		lib:      lib,
		scanner:  scanner.New(lib),
		redactor: redactor.New(observer, auditLog, nil),
		observer: observer,
		auditLog: auditLog,
	}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(securityHeaders)

	r.Get("/health", s.handleHealth)
	r.Get("/compliance", s.handleCompliance)
	r.Get("/api/presets", s.handlePresets)
	r.Post("/api/scan", s.handleScan)
	r.Post("/redact", s.handleRedact)
	return r
}

// ListenAndServe starts the server on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// securityHeaders sets the response headers required for handling sensitive
// documents: no sniffing, no framing, no referrer leakage, no caching.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		h.Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"message":    "Redaction server is running",
		"version":    version.Short(),
		"privacy":    "All processing is local - no data leaves your device",
		"compliance": []string{"GDPR", "CCPA", "HIPAA-compatible"},
	})
}

func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"application": "Zero-Trust Redactor",
		"version":     version.Short(),
		"compliance": map[string]any{
			"GDPR": map[string]string{
				"status": "compliant",
				"reason": "No personal data collected or processed externally",
			},
			"CCPA": map[string]string{
				"status": "compliant",
				"reason": "No data sale or sharing",
			},
			"HIPAA": map[string]string{
				"status": "compatible",
				"reason": "PHI never leaves device, suitable for healthcare",
			},
		},
		"data_handling": map[string]string{
			"collection":   "none",
			"storage":      "temporary only (deleted after processing)",
			"transmission": "localhost only",
			"retention":    "0 seconds",
		},
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	type presetInfo struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	var out []presetInfo
	for _, id := range s.lib.PresetIDs() {
		p, _ := s.lib.Preset(id)
		out = append(out, presetInfo{ID: p.ID, Name: p.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": out})
}

// taggerInput carries the external statistical tagger's output, with the
// explicit availability flag distinguishing "nothing found" from "never
// ran".
type taggerInput struct {
	Available bool                   `json:"available"`
	Tokens    []detector.TaggedToken `json:"tokens"`
}

// extractorInput carries the external generative extractor's raw response.
type extractorInput struct {
	Available bool   `json:"available"`
	Response  string `json:"response"`
}

type scanRequest struct {
	Text      string          `json:"text"`
	Presets   []string        `json:"presets"`
	Keywords  []string        `json:"keywords"`
	Manual    []string        `json:"manual"`
	Tagger    *taggerInput    `json:"tagger,omitempty"`
	Extractor *extractorInput `json:"extractor,omitempty"`
}

type scanResponse struct {
	Entities          []detector.Entity `json:"entities"`
	DegradedDetectors []string          `json:"degraded_detectors,omitempty"`
}

// handleScan runs every detector whose input was supplied and fuses the
// results. Detector ordering is statistical, then rules, then free text,
// then manual additions.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	finish := s.observer.StartTiming("web", "scan", "")

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		finish(false, nil)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		finish(false, nil)
		writeError(w, http.StatusBadRequest, "no text to scan")
		return
	}

	results := map[string]detector.Result{
		"rules": {Available: true, Entities: s.scanner.Scan(req.Text, req.Presets, req.Keywords)},
	}
	if req.Tagger != nil && req.Tagger.Available {
		results["tagger"] = detector.Result{Available: true, Entities: tokenfusion.Fuse(req.Tagger.Tokens)}
	} else {
		results["tagger"] = detector.Result{}
	}
	if req.Extractor != nil && req.Extractor.Available {
		results["extractor"] = detector.Result{Available: true, Entities: freetext.Parse(req.Extractor.Response)}
	} else {
		results["extractor"] = detector.Result{}
	}

	entities := fusion.Fuse(
		results["tagger"].Entities,
		results["rules"].Entities,
		results["extractor"].Entities,
		fusion.Manual(req.Manual),
	)

	finish(true, map[string]any{"entity_count": len(entities)})
	writeJSON(w, http.StatusOK, scanResponse{
		Entities:          entities,
		DegradedDetectors: fusion.Degraded(results),
	})
}

// handleRedact accepts a multipart PDF upload plus a comma-separated word
// list, runs detection over the document text, and streams back the
// redacted copy. The upload and the copy are removed when the request
// completes; only hashes reach the audit log.
func (s *Server) handleRedact(w http.ResponseWriter, r *http.Request) {
	finish := s.observer.StartTiming("web", "redact", "")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		finish(false, nil)
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	words := splitWords(r.FormValue("words"))
	presets := splitWords(r.FormValue("presets"))
	if len(words) == 0 && len(presets) == 0 {
		finish(false, nil)
		writeError(w, http.StatusBadRequest, "no words to redact")
		return
	}

	id := uuid.New().String()[:8]
	inputPath := filepath.Join(s.cfg.Server.TempDir, fmt.Sprintf("input_%s.pdf", id))
	if err := saveUpload(file, inputPath); err != nil {
		finish(false, nil)
		writeError(w, http.StatusInternalServerError, "saving upload failed")
		return
	}
	defer os.Remove(inputPath)

	doc, err := pagetext.Extract(inputPath)
	if err != nil {
		finish(false, nil)
		writeError(w, http.StatusBadRequest, "could not read PDF text")
		return
	}

	entities := fusion.Fuse(
		s.scanner.Scan(doc.PlainText, presets, nil),
		fusion.Manual(words),
	)

	outputDir := filepath.Join(s.cfg.Server.TempDir, fmt.Sprintf("redacted_%s", id))
	report, err := s.redactor.RedactFile(inputPath, outputDir, entities)
	if err != nil {
		finish(false, map[string]any{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "redaction failed")
		return
	}
	defer os.RemoveAll(outputDir)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="redacted_secure.pdf"`)
	w.Header().Set("X-Redaction-Count", fmt.Sprintf("%d", report.RegionCount))
	w.Header().Set("X-Unmatched-Count", fmt.Sprintf("%d", report.UnmatchedCount))
	http.ServeFile(w, r, report.OutputPath)

	finish(true, map[string]any{
		"region_count":    report.RegionCount,
		"unmatched_count": report.UnmatchedCount,
	})
}

func splitWords(raw string) []string {
	var out []string
	for _, w := range strings.Split(raw, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func saveUpload(src io.Reader, dst string) error {
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		return err
	}
	return f.Close()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
