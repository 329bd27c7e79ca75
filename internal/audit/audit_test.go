// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l := New(path)

	l.Log("REDACTION_START", "file_hash=abc123, entities=3")
	l.Log("REDACTION_COMPLETE", "file_hash=abc123, regions=5")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "REDACTION_START: file_hash=abc123, entities=3") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[0], "[") {
		t.Errorf("entry missing timestamp prefix: %q", lines[0])
	}
}

func TestLogDisabled(t *testing.T) {
	// Neither a nil logger nor an empty path may panic or create files.
	var nilLogger *Logger
	nilLogger.Log("ACTION", "details")
	New("").Log("ACTION", "details")
}

func TestLogSwallowsWriteFailure(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "missing-dir", "audit.log"))
	l.Log("ACTION", "details")
}

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("hello world"), 0600); err != nil {
		t.Fatal(err)
	}

	hash, err := FileHash(path)
	if err != nil {
		t.Fatalf("FileHash: %v", err)
	}
	// sha256("hello world") truncated to 16 hex characters.
	if hash != "b94d27b9934d3e08" {
		t.Errorf("hash = %q, want %q", hash, "b94d27b9934d3e08")
	}

	if _, err := FileHash(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("FileHash on a missing file did not fail")
	}
}
