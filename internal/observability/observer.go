// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability provides lightweight operation timing and debug
// event logging for the scan and redaction pipeline. The detection engine
// itself stays pure; observers are attached at the orchestration layer.
package observability

import (
	"encoding/json"
	"io"
	"time"
)

// Level controls how much an observer emits.
type Level int

const (
	LevelOff Level = iota
	LevelMetrics
	LevelDebug
)

// Observer records pipeline operations.
type Observer struct {
	level  Level
	writer io.Writer
}

// New creates an Observer writing to w at the given level. A nil writer
// observer is valid and silent.
func New(level Level, w io.Writer) *Observer {
	return &Observer{level: level, writer: w}
}

// StartTiming returns a completion function that records the operation's
// duration and outcome. Timing completions emit at LevelMetrics and above.
func (o *Observer) StartTiming(component, operation, document string) func(success bool, metadata map[string]any) {
	start := time.Now()

	return func(success bool, metadata map[string]any) {
		o.log(Event{
			Component:  component,
			Operation:  operation,
			Document:   document,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		}, LevelMetrics)
	}
}

// Record logs a one-off diagnostic event. Emits at LevelDebug only.
func (o *Observer) Record(component, operation string, success bool, metadata map[string]any) {
	o.log(Event{
		Component: component,
		Operation: operation,
		Success:   success,
		Metadata:  metadata,
	}, LevelDebug)
}

func (o *Observer) log(e Event, min Level) {
	if o == nil || o.level < min || o.writer == nil {
		return
	}
	e.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	json.NewEncoder(o.writer).Encode(e)
}

// Event is one logged pipeline operation.
type Event struct {
	Timestamp  string         `json:"timestamp"`
	Component  string         `json:"component"`
	Operation  string         `json:"operation"`
	Document   string         `json:"document,omitempty"`
	DurationMs int64          `json:"duration_ms,omitempty"`
	Success    bool           `json:"success"`
	Error      string         `json:"error,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
