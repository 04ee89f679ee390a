package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if New(level) == nil {
			t.Fatalf("expected logger for level %q", level)
		}
	}
}

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", &buf)

	logger.Info("lead received", "origin", "203.0.113.9")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON log record: %v", err)
	}
	if record["msg"] != "lead received" {
		t.Errorf("expected msg field, got %v", record["msg"])
	}
	if record["origin"] != "203.0.113.9" {
		t.Errorf("expected origin field, got %v", record["origin"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("error", &buf)

	logger.Info("should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info record to be suppressed, got %q", buf.String())
	}

	logger.Error("kept")
	if buf.Len() == 0 {
		t.Fatal("expected error record to be written")
	}
}

func TestWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", &buf).With("component", "delivery")

	logger.Info("dispatched")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON log record: %v", err)
	}
	if record["component"] != "delivery" {
		t.Errorf("expected component attribute, got %v", record["component"])
	}
}
