// Package observability provides structured logging for dbsetup runs.
//
// Every processed script emits one event: run_id, script, outcome,
// bytes read, duration and error (if any).
package observability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Outcomes recorded for a script.
const (
	OutcomeSuccess = "success"
	OutcomeMissing = "missing"
	OutcomeError   = "error"
)

// ErrLogWrite is wrapped by LogScript errors caused by the underlying
// writer. The entry is still recorded in the summary.
var ErrLogWrite = errors.New("failed to write log")

// ScriptLogEntry contains the fields logged for one script.
type ScriptLogEntry struct {
	// RunID identifies the dbsetup invocation.
	RunID string

	// Script is the path as listed in the configuration.
	Script string

	// Outcome is one of "success", "missing" or "error".
	Outcome string

	// Bytes is the size of the content read. Zero unless Outcome is success.
	Bytes int

	// Duration is how long the read took. Must be non-negative.
	Duration time.Duration

	// Error contains the failure reason. Empty for successful reads.
	Error string
}

// Validate checks that all required fields are present.
func (e *ScriptLogEntry) Validate() error {
	if e.RunID == "" {
		return fmt.Errorf("observability: run_id is required")
	}
	if e.Script == "" {
		return fmt.Errorf("observability: script is required")
	}
	switch e.Outcome {
	case OutcomeSuccess, OutcomeMissing, OutcomeError:
	default:
		return fmt.Errorf("observability: unknown outcome %q", e.Outcome)
	}
	if e.Duration < 0 {
		return fmt.Errorf("observability: duration cannot be negative")
	}
	return nil
}

// level returns the severity of the entry.
func (e *ScriptLogEntry) level() string {
	if e.Outcome == OutcomeSuccess {
		return "info"
	}
	return "error"
}

// ScriptLogger is the interface for script event logging.
type ScriptLogger interface {
	// LogScript records a script event.
	// Returns an error if logging fails or the entry is invalid.
	LogScript(ctx context.Context, entry ScriptLogEntry) error

	// Summary returns the counts recorded so far.
	Summary() *RunSummary
}

// RunSummary aggregates the outcomes of a run.
type RunSummary struct {
	Succeeded int         `json:"succeeded"`
	Missing   int         `json:"missing"`
	Failed    int         `json:"failed"`
	Errors    []ErrorStat `json:"errors"`
	Bytes     int         `json:"bytes"`
}

// ErrorStat counts occurrences of a failure reason.
type ErrorStat struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

type jsonLogOutput struct {
	Timestamp  string `json:"timestamp"`
	Level      string `json:"level"`
	RunID      string `json:"run_id"`
	Script     string `json:"script"`
	Outcome    string `json:"outcome"`
	Bytes      int    `json:"bytes"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// recorder tracks entries for the run summary.
type recorder struct {
	entries []ScriptLogEntry
	mu      sync.RWMutex
}

func (r *recorder) record(entry ScriptLogEntry) {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
}

// Summary returns aggregated outcome counts.
func (r *recorder) Summary() *RunSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := &RunSummary{
		Errors: []ErrorStat{},
	}
	reasons := make(map[string]int)

	for _, entry := range r.entries {
		switch entry.Outcome {
		case OutcomeSuccess:
			summary.Succeeded++
			summary.Bytes += entry.Bytes
		case OutcomeMissing:
			summary.Missing++
		case OutcomeError:
			summary.Failed++
			reasons[entry.Error]++
		}
	}

	for reason, count := range reasons {
		summary.Errors = append(summary.Errors, ErrorStat{Reason: reason, Count: count})
	}
	sort.Slice(summary.Errors, func(i, j int) bool {
		if summary.Errors[i].Count != summary.Errors[j].Count {
			return summary.Errors[i].Count > summary.Errors[j].Count
		}
		return summary.Errors[i].Reason < summary.Errors[j].Reason
	})

	return summary
}

// JSONLogger implements ScriptLogger with JSON-lines output.
type JSONLogger struct {
	recorder
	writer    io.Writer
	errorOnly bool
}

// NewJSONLogger creates a new JSON logger writing to the given writer.
// When errorOnly is set, successful reads are recorded but not written.
func NewJSONLogger(w io.Writer, errorOnly bool) *JSONLogger {
	return &JSONLogger{writer: w, errorOnly: errorOnly}
}

// LogScript logs a script event as a single JSON line.
func (l *JSONLogger) LogScript(ctx context.Context, entry ScriptLogEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("observability: context error: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	l.record(entry)

	level := entry.level()
	if l.errorOnly && level != "error" {
		return nil
	}

	data, err := json.Marshal(jsonLogOutput{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Level:      level,
		RunID:      entry.RunID,
		Script:     entry.Script,
		Outcome:    entry.Outcome,
		Bytes:      entry.Bytes,
		DurationMs: entry.Duration.Milliseconds(),
		Error:      entry.Error,
	})
	if err != nil {
		return fmt.Errorf("observability: failed to marshal log: %w", err)
	}

	if _, err := l.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("observability: %w: %w", ErrLogWrite, err)
	}
	return nil
}

// TextLogger implements ScriptLogger with key=value output.
type TextLogger struct {
	recorder
	writer    io.Writer
	errorOnly bool
}

// NewTextLogger creates a new key=value logger writing to the given writer.
func NewTextLogger(w io.Writer, errorOnly bool) *TextLogger {
	return &TextLogger{writer: w, errorOnly: errorOnly}
}

// LogScript logs a script event as a single key=value line.
func (l *TextLogger) LogScript(ctx context.Context, entry ScriptLogEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("observability: context error: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	l.record(entry)

	level := entry.level()
	if l.errorOnly && level != "error" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "time=%s level=%s run_id=%s script=%q outcome=%s bytes=%d duration_ms=%d",
		time.Now().UTC().Format(time.RFC3339), level, entry.RunID, entry.Script,
		entry.Outcome, entry.Bytes, entry.Duration.Milliseconds())
	if entry.Error != "" {
		fmt.Fprintf(&b, " error=%q", entry.Error)
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(l.writer, b.String()); err != nil {
		return fmt.Errorf("observability: %w: %w", ErrLogWrite, err)
	}
	return nil
}

// NoopLogger records outcomes but writes nothing.
// Used when logging is off.
type NoopLogger struct {
	recorder
}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// LogScript records the entry and always succeeds.
func (l *NoopLogger) LogScript(ctx context.Context, entry ScriptLogEntry) error {
	l.record(entry)
	return nil
}

// New returns the logger for the given level and format.
// Level "off" yields a NoopLogger; "error" writes failures only.
func New(w io.Writer, level, format string) ScriptLogger {
	if level == "" || level == "off" {
		return NewNoopLogger()
	}
	errorOnly := level == "error"
	if format == "text" {
		return NewTextLogger(w, errorOnly)
	}
	return NewJSONLogger(w, errorOnly)
}
