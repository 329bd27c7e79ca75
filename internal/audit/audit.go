// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package audit writes a local, append-only compliance trail. Entries carry
// timestamps, actions and short file hashes only; document content never
// reaches the log.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// shortHashLen is the number of hex characters kept from a file hash.
// Enough to correlate entries, useless for content recovery.
const shortHashLen = 16

// Logger appends audit entries to a local file.
type Logger struct {
	mu   sync.Mutex
	path string
}

// New creates a Logger writing to path. An empty path disables logging.
func New(path string) *Logger {
	return &Logger{path: path}
}

// Log appends one entry. Audit failures are deliberately swallowed: a full
// disk must not abort a redaction.
func (l *Logger) Log(action, details string) {
	if l == nil || l.path == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	timestamp := time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintf(f, "[%s] %s: %s\n", timestamp, action, details)
}

// FileHash returns a short SHA-256 hash of the file at path, for audit
// correlation without storing content.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("audit hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("audit hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil))[:shortHashLen], nil
}
