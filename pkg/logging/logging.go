// Package logging provides the structured logger handed to each component.
// One JSON object per line on stdout.
package logging

import (
	"encoding/json"
	"log"
	"time"
)

type Logger interface {
	Info(message string, fields map[string]any)
	Warn(message string, fields map[string]any)
	Error(message string, err error, fields map[string]any)
}

type jsonLogger struct {
	service string
	debug   bool
}

func New(service string, debug bool) Logger {
	return &jsonLogger{service: service, debug: debug}
}

func (l *jsonLogger) emit(level, message string, err error, fields map[string]any) {
	payload := map[string]any{
		"service":   l.service,
		"level":     level,
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	for k, v := range fields {
		payload[k] = v
	}
	data, merr := json.Marshal(payload)
	if merr != nil {
		log.Printf("{\"service\":%q,\"level\":\"error\",\"message\":\"log marshal failed\"}", l.service)
		return
	}
	log.Print(string(data))
}

func (l *jsonLogger) Info(message string, fields map[string]any) {
	l.emit("info", message, nil, fields)
}

func (l *jsonLogger) Warn(message string, fields map[string]any) {
	l.emit("warn", message, nil, fields)
}

func (l *jsonLogger) Error(message string, err error, fields map[string]any) {
	l.emit("error", message, err, fields)
}

// Nop discards everything. Handy in tests.
type Nop struct{}

func (Nop) Info(string, map[string]any)         {}
func (Nop) Warn(string, map[string]any)         {}
func (Nop) Error(string, error, map[string]any) {}
