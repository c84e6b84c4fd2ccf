package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/volleytrieste/dbsetup/internal/observability"
	"github.com/volleytrieste/dbsetup/internal/runner"
)

// TextOptions controls the console layout.
type TextOptions struct {
	Project       string
	Dashboard     string
	PreviewLength int
	BannerWidth   int

	// Quiet drops the opening line, previews and next-step instructions.
	// Script content and the summary are always printed.
	Quiet bool
}

// TextReporter prints each script between separator banners so it can be
// copied into a database console.
type TextReporter struct {
	w      io.Writer
	opts   TextOptions
	styles Styles
	err    error
}

// NewTextReporter creates a TextReporter writing to w.
func NewTextReporter(w io.Writer, opts TextOptions, styles Styles) *TextReporter {
	if opts.BannerWidth < 1 {
		opts.BannerWidth = 50
	}
	return &TextReporter{w: w, opts: opts, styles: styles}
}

func (t *TextReporter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *TextReporter) banner() string {
	return strings.Repeat("=", t.opts.BannerWidth)
}

// Begin prints the opening line.
func (t *TextReporter) Begin(runID string, total int) error {
	if !t.opts.Quiet {
		t.printf("Setting up %s database...\n", t.opts.Project)
	}
	return t.err
}

// Script prints one script result.
func (t *TextReporter) Script(res runner.ScriptResult) error {
	switch res.Outcome {
	case observability.OutcomeMissing:
		t.printf("%s\n", t.styles.Warning("SQL script not found: "+res.Path))
	case observability.OutcomeError:
		t.printf("%s\n", t.styles.Failure(fmt.Sprintf("Error reading SQL script %s: %s", res.Path, runner.Reason(res.Err))))
		t.printf("%s\n", t.styles.Failure("Failed to process "+res.Path))
	default:
		if !t.opts.Quiet {
			t.printf("Processing SQL script: %s\n", res.Path)
			t.printf("%s %s...\n", t.styles.Dim("SQL Content Preview:"), Preview(res.Content, t.opts.PreviewLength))
		}
		t.printf("\n%s\n", t.banner())
		t.printf("SQL SCRIPT: %s\n", res.Path)
		t.printf("%s\n", t.banner())
		t.printf("%s\n", res.Content)
		t.printf("%s\n\n", t.banner())
	}
	return t.err
}

// End prints the summary and, when every script was read, the manual
// steps for the hosted dashboard.
func (t *TextReporter) End(result *runner.Result) error {
	t.printf("\nProcessed %d/%d scripts\n", result.Succeeded(), result.Total())

	if !result.Complete() {
		t.printf("%s\n", t.styles.Failure("❌ Some scripts failed to process"))
		return t.err
	}

	t.printf("%s\n", t.styles.Success("✅ Database setup completed successfully!"))
	if t.opts.Quiet {
		return t.err
	}
	t.printf("\nNext steps:\n")
	t.printf("1. Copy the SQL commands above\n")
	t.printf("2. Go to your %s project dashboard\n", t.opts.Dashboard)
	t.printf("3. Navigate to the SQL Editor\n")
	t.printf("4. Paste and execute each SQL script\n")
	t.printf("5. Refresh your application to see the data\n")
	return t.err
}

// Preview returns the first n characters of content, or all of it when
// shorter. Characters are counted as code points.
func Preview(content string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range content {
		if count == n {
			return content[:i]
		}
		count++
	}
	return content
}
