package report

import (
	"encoding/json"
	"io"

	"github.com/volleytrieste/dbsetup/internal/runner"
)

// JSONReport is the machine-readable form of a run.
type JSONReport struct {
	RunID     string       `json:"run_id"`
	Project   string       `json:"project"`
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Complete  bool         `json:"complete"`
	Scripts   []JSONScript `json:"scripts"`
}

// JSONScript is one script entry in a JSONReport.
type JSONScript struct {
	Path    string `json:"path"`
	Outcome string `json:"outcome"`
	Bytes   int    `json:"bytes"`
	Error   string `json:"error,omitempty"`
	Content string `json:"content,omitempty"`
}

// JSONReporter writes a single JSON document when the run ends.
type JSONReporter struct {
	w              io.Writer
	project        string
	includeContent bool
	scripts        []JSONScript
}

// NewJSONReporter creates a JSONReporter. Script content is only kept
// when includeContent is set.
func NewJSONReporter(w io.Writer, project string, includeContent bool) *JSONReporter {
	return &JSONReporter{w: w, project: project, includeContent: includeContent}
}

// Begin resets the collected scripts.
func (j *JSONReporter) Begin(runID string, total int) error {
	j.scripts = make([]JSONScript, 0, total)
	return nil
}

// Script records one script result.
func (j *JSONReporter) Script(res runner.ScriptResult) error {
	entry := JSONScript{
		Path:    res.Path,
		Outcome: res.Outcome,
		Bytes:   res.Bytes,
	}
	if res.Err != nil {
		entry.Error = runner.Reason(res.Err)
	}
	if j.includeContent {
		entry.Content = res.Content
	}
	j.scripts = append(j.scripts, entry)
	return nil
}

// End writes the report.
func (j *JSONReporter) End(result *runner.Result) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(JSONReport{
		RunID:     result.RunID,
		Project:   j.project,
		Total:     result.Total(),
		Succeeded: result.Succeeded(),
		Complete:  result.Complete(),
		Scripts:   j.scripts,
	})
}
