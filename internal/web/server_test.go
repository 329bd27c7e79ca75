// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/config"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/detector"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/observability"
	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/patterns"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Server.TempDir = t.TempDir()
	return NewServer(cfg, patterns.NewLibrary(), observability.New(observability.LevelOff, nil), nil).Router()
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	h := rec.Header()
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", h.Get("Referrer-Policy"))
	assert.Contains(t, h.Get("Cache-Control"), "no-store")
}

func TestCompliance(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compliance", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Application  string                       `json:"application"`
		Compliance   map[string]map[string]string `json:"compliance"`
		DataHandling map[string]string            `json:"data_handling"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Zero-Trust Redactor", body.Application)
	assert.Contains(t, body.Compliance, "GDPR")
	assert.Equal(t, "none", body.DataHandling["collection"])
}

func TestPresets(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/presets", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Presets []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"presets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	ids := make([]string, len(body.Presets))
	for i, p := range body.Presets {
		ids[i] = p.ID
	}
	assert.Contains(t, ids, "bank-statement")
	assert.Contains(t, ids, "custom")
}

func postScan(t *testing.T, payload any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/scan", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, req)
	return rec
}

func TestScan(t *testing.T) {
	rec := postScan(t, map[string]any{
		"text":    "Statement for Mr. John Smith\nAccount Number: 12345678\nEmail: john@example.com",
		"presets": []string{"bank-statement"},
		"manual":  []string{"Extra Phrase"},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body scanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	found := make(map[string]detector.Entity)
	for _, e := range body.Entities {
		found[detector.NormalizeKey(e.Text)] = e
	}
	assert.Contains(t, found, "john smith")
	assert.Contains(t, found, "12345678")
	assert.Contains(t, found, "john@example.com")
	assert.Contains(t, found, "extra phrase")
	assert.Equal(t, detector.SourceManual, found["extra phrase"].Source)

	// Neither optional detector ran.
	assert.ElementsMatch(t, []string{"extractor", "tagger"}, body.DegradedDetectors)

	// Descending confidence, manual additions first.
	for i := 1; i < len(body.Entities); i++ {
		assert.GreaterOrEqual(t, body.Entities[i-1].Score, body.Entities[i].Score)
	}
}

func TestScanWithTaggerAndExtractor(t *testing.T) {
	rec := postScan(t, map[string]any{
		"text": "Maria Berger visited the office.",
		"tagger": map[string]any{
			"available": true,
			"tokens": []map[string]any{
				{"text": "Maria", "tag": "B-PER", "isBeginning": true, "score": 0.98},
				{"text": "Ber", "tag": "I-PER", "isBeginning": false, "score": 0.95},
				{"text": "##ger", "tag": "I-PER", "isBeginning": false, "score": 0.91},
			},
		},
		"extractor": map[string]any{
			"available": true,
			"response":  "- Maria Berger\n- extra@example.org",
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body scanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.DegradedDetectors)

	var berger detector.Entity
	for _, e := range body.Entities {
		if detector.NormalizeKey(e.Text) == "maria berger" {
			berger = e
		}
	}
	// The tagger saw it first; its fused span and score win over the
	// heuristic and free-text duplicates.
	require.NotZero(t, berger.Text)
	assert.Equal(t, detector.SourceTagger, berger.Source)
	assert.InDelta(t, 0.98, berger.Score, 1e-9)
}

func TestScanRejectsEmptyText(t *testing.T) {
	rec := postScan(t, map[string]any{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanRejectsBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRedactRequiresFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/redact", strings.NewReader("words=John"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"John Smith", "12345678"}, splitWords("John Smith, 12345678,, "))
	assert.Nil(t, splitWords(""))
	assert.Nil(t, splitWords(" , ,"))
}
