// Package runner reads an ordered list of SQL scripts and hands each one to
// a Reporter for display.
//
// Scripts are processed one at a time. A missing or unreadable script is
// reported and skipped; it never stops the run.
package runner

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/volleytrieste/dbsetup/internal/errors"
	"github.com/volleytrieste/dbsetup/internal/observability"
)

// ScriptResult is the outcome of processing one script.
type ScriptResult struct {
	// Path is the script path as listed.
	Path string

	// Outcome is observability.OutcomeSuccess, OutcomeMissing or OutcomeError.
	Outcome string

	// Content is the full script text. Only set while the result is being
	// reported; the runner clears it afterwards.
	Content string

	// Bytes is the size of the content read.
	Bytes int

	// Err is *errors.ErrScriptNotFound or *errors.ErrScriptUnreadable when
	// the script was not processed.
	Err error

	Duration time.Duration
}

// OK reports whether the script was read successfully.
func (s ScriptResult) OK() bool {
	return s.Outcome == observability.OutcomeSuccess
}

// Result is the outcome of a run.
type Result struct {
	RunID   string
	Scripts []ScriptResult

	// LogErrors holds event log writes that failed. They never affect
	// what is reported.
	LogErrors []error
}

// Total returns the number of scripts in the run.
func (r *Result) Total() int {
	return len(r.Scripts)
}

// Succeeded returns the number of scripts read successfully.
func (r *Result) Succeeded() int {
	n := 0
	for _, s := range r.Scripts {
		if s.OK() {
			n++
		}
	}
	return n
}

// Complete reports whether every script was read successfully.
func (r *Result) Complete() bool {
	return r.Succeeded() == r.Total()
}

// Reporter receives run events in order: Begin once, Script once per
// listed path, End once.
type Reporter interface {
	Begin(runID string, total int) error
	Script(res ScriptResult) error
	End(result *Result) error
}

// Runner processes a fixed list of scripts from a filesystem.
type Runner struct {
	fsys     fs.FS
	scripts  []string
	reporter Reporter
	logger   observability.ScriptLogger
	now      func() time.Time
}

// New creates a Runner reading scripts from fsys.
// A nil logger is replaced by a NoopLogger.
func New(fsys fs.FS, scripts []string, reporter Reporter, logger observability.ScriptLogger) *Runner {
	if logger == nil {
		logger = observability.NewNoopLogger()
	}
	return &Runner{
		fsys:     fsys,
		scripts:  append([]string(nil), scripts...),
		reporter: reporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Run processes every script in order.
//
// Per-script failures are recorded in the Result and never returned as an
// error. Each script is reported before it is logged, and a log write
// failure is kept in Result.LogErrors. Run only fails when the reporter
// cannot write, the logger rejects an invalid event, or ctx is cancelled
// between scripts.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:   uuid.NewString(),
		Scripts: make([]ScriptResult, 0, len(r.scripts)),
	}

	if err := r.reporter.Begin(result.RunID, len(r.scripts)); err != nil {
		return result, fmt.Errorf("runner: report begin: %w", err)
	}

	for _, path := range r.scripts {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("runner: %w", err)
		}

		res := r.process(path)

		if err := r.reporter.Script(res); err != nil {
			return result, fmt.Errorf("runner: report %s: %w", path, err)
		}
		res.Content = ""
		result.Scripts = append(result.Scripts, res)

		if err := r.logger.LogScript(ctx, logEntry(result.RunID, res)); err != nil {
			if !stderrors.Is(err, observability.ErrLogWrite) {
				return result, err
			}
			result.LogErrors = append(result.LogErrors, err)
		}
	}

	if err := r.reporter.End(result); err != nil {
		return result, fmt.Errorf("runner: report end: %w", err)
	}
	return result, nil
}

func (r *Runner) process(path string) ScriptResult {
	start := r.now()
	res := ScriptResult{Path: path}

	if _, err := fs.Stat(r.fsys, path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			res.Outcome = observability.OutcomeMissing
			res.Err = errors.NewScriptNotFound(path)
		} else {
			res.Outcome = observability.OutcomeError
			res.Err = errors.NewScriptUnreadable(path, err)
		}
		res.Duration = r.now().Sub(start)
		return res
	}

	content, err := readScript(r.fsys, path)
	res.Duration = r.now().Sub(start)
	if err != nil {
		res.Outcome = observability.OutcomeError
		res.Err = err
		return res
	}

	res.Outcome = observability.OutcomeSuccess
	res.Content = content
	res.Bytes = len(content)
	return res
}

// readScript reads the whole file as UTF-8 text. The file is closed on
// every path.
func readScript(fsys fs.FS, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", errors.NewScriptUnreadable(path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", errors.NewScriptUnreadable(path, err)
	}
	if !utf8.Valid(data) {
		return "", errors.NewInvalidEncoding(path)
	}
	return string(data), nil
}

func logEntry(runID string, res ScriptResult) observability.ScriptLogEntry {
	entry := observability.ScriptLogEntry{
		RunID:    runID,
		Script:   res.Path,
		Outcome:  res.Outcome,
		Bytes:    res.Bytes,
		Duration: res.Duration,
	}
	if res.Err != nil {
		entry.Error = Reason(res.Err)
	}
	return entry
}

// Reason returns the one-line failure reason for a script error.
func Reason(err error) string {
	var unreadable *errors.ErrScriptUnreadable
	if stderrors.As(err, &unreadable) {
		return unreadable.Reason
	}
	var missing *errors.ErrScriptNotFound
	if stderrors.As(err, &missing) {
		return missing.Message
	}
	return err.Error()
}
