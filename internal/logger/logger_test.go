// Copyright 2026 Paysum Users
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, true)
	t.Cleanup(func() { SetOutput(os.Stderr, false) })

	Logger.Info("name resolved", "account", "GABC", "name", "Alice")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\noutput: %s", err, buf.String())
	}
	if record["msg"] != "name resolved" {
		t.Errorf("msg = %v, want %q", record["msg"], "name resolved")
	}
	if record["account"] != "GABC" {
		t.Errorf("account = %v, want GABC", record["account"])
	}
}

func TestSetOutputText(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, false)
	t.Cleanup(func() { SetOutput(os.Stderr, false) })

	Logger.Warn("rate limit exceeded", "status", 429)

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("rate limit exceeded")) {
		t.Errorf("output missing message: %s", out)
	}
	if json.Valid(buf.Bytes()) {
		t.Errorf("text handler should not emit JSON: %s", out)
	}
}

func TestSetLevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, false)
	t.Cleanup(func() {
		SetLevel(slog.LevelInfo)
		SetOutput(os.Stderr, false)
	})

	SetLevel(slog.LevelError)
	Logger.Info("should be dropped")
	Logger.Error("should be kept")

	if bytes.Contains(buf.Bytes(), []byte("should be dropped")) {
		t.Error("info record logged at error level")
	}
	if !bytes.Contains(buf.Bytes(), []byte("should be kept")) {
		t.Error("error record missing")
	}
}
