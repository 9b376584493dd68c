// Package notify carries user-facing feedback out of the action handlers.
// Notifications are fire and forget; nothing in the app waits on a sink.
package notify

import (
	"encoding/json"
	"log"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Notification struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Sink receives notifications. Implementations must not block the caller for
// longer than a log write.
type Sink interface {
	Notify(n Notification)
}

// LogSink writes each notification as one JSON line, shaped like the access
// log so both streams grep the same way.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(n Notification) {
	level := "info"
	if n.Severity == SeverityError {
		level = "error"
	}
	payload := map[string]any{
		"ts":       time.Now().UTC().Format(time.RFC3339Nano),
		"level":    level,
		"msg":      "notification",
		"title":    n.Title,
		"message":  n.Message,
		"severity": string(n.Severity),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		s.logger.Printf(`{"level":"error","msg":"log_marshal_failed","error":%q}`, err.Error())
		return
	}
	s.logger.Print(string(b))
}
