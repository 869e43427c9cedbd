package obs

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogErrorFillsLevelAndTimestamp(t *testing.T) {
	logger := Logger()
	origWriter := logger.Writer()
	logger.SetFlags(0)

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(origWriter)

	LogError("request_failed", map[string]any{
		"request_id": "req-1",
		"error":      "boom",
	})

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log line")
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log is not valid JSON: %v", err)
	}
	if entry["level"] != "error" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if entry["msg"] != "request_failed" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["ts"] == nil || entry["ts"] == "" {
		t.Fatal("expected ts field")
	}
	if entry["error"] != "boom" || entry["request_id"] != "req-1" {
		t.Fatalf("fields not preserved: %v", entry)
	}
}
