package notify

import (
	"bytes"
	"encoding/json"
	"log"
	"testing"
)

func TestLogSink_EmitsOneJSONLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(log.New(&buf, "", 0))

	sink.Notify(Notification{
		Title:    "Task added",
		Message:  "Write release notes",
		Severity: SeveritySuccess,
	})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	if line["msg"] != "notification" {
		t.Fatalf("wrong msg field: %v", line["msg"])
	}
	if line["title"] != "Task added" || line["severity"] != "success" {
		t.Fatalf("payload mismatch: %v", line)
	}
	if line["level"] != "info" {
		t.Fatalf("success should log at info, got %v", line["level"])
	}
}

func TestLogSink_ErrorSeverityLogsAtError(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(log.New(&buf, "", 0))

	sink.Notify(Notification{Title: "Save failed", Severity: SeverityError})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if line["level"] != "error" {
		t.Fatalf("want level error, got %v", line["level"])
	}
}

func TestMemory_RecordsInOrder(t *testing.T) {
	m := NewMemory()
	m.Notify(Notification{Title: "one", Severity: SeverityInfo})
	m.Notify(Notification{Title: "two", Severity: SeverityError})

	all := m.All()
	if len(all) != 2 || all[0].Title != "one" || all[1].Title != "two" {
		t.Fatalf("unexpected notifications: %v", all)
	}
	if m.LastSeverity() != SeverityError {
		t.Fatalf("want last severity error, got %s", m.LastSeverity())
	}

	m.Clear()
	if len(m.All()) != 0 || m.LastSeverity() != "" {
		t.Fatalf("clear did not empty the sink")
	}
}
