package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/volleytrieste/dbsetup/internal/observability"
	"github.com/volleytrieste/dbsetup/internal/runner"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every script is present and readable",
		Long: `Run diagnostics without printing any SQL.

Checks:
  - configuration is valid
  - script root exists
  - each script exists and is readable UTF-8 text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck()
		},
	}
}

// DiagnosticCheck represents a single diagnostic check result.
type DiagnosticCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (c *CLI) printCheck(check DiagnosticCheck) {
	if c.jsonOutput {
		return
	}
	status := "✗"
	if check.Passed {
		status = "✓"
	}
	c.printf("%s %s: %s\n", status, check.Name, check.Message)
	if check.Details != "" && !check.Passed {
		c.printf("  → %s\n", check.Details)
	}
}

// checkReporter turns runner events into diagnostic checks.
type checkReporter struct {
	cli    *CLI
	checks []DiagnosticCheck
}

func (r *checkReporter) Begin(runID string, total int) error {
	return nil
}

func (r *checkReporter) Script(res runner.ScriptResult) error {
	check := DiagnosticCheck{Name: res.Path}
	switch res.Outcome {
	case observability.OutcomeSuccess:
		check.Passed = true
		check.Message = fmt.Sprintf("readable (%d bytes)", res.Bytes)
	case observability.OutcomeMissing:
		check.Message = "not found"
		check.Details = "create the file or fix the path in the scripts list"
	default:
		check.Message = "unreadable"
		check.Details = runner.Reason(res.Err)
	}
	r.checks = append(r.checks, check)
	r.cli.printCheck(check)
	return nil
}

func (r *checkReporter) End(result *runner.Result) error {
	return nil
}

func (c *CLI) runCheck() error {
	if !c.jsonOutput {
		c.println("dbsetup Diagnostics")
		c.println("===================")
		c.println("")
	}

	configCheck := c.checkConfig()
	c.printCheck(configCheck)
	checks := []DiagnosticCheck{configCheck}

	var result *runner.Result
	if configCheck.Passed {
		rootCheck := c.checkRoot()
		c.printCheck(rootCheck)
		checks = append(checks, rootCheck)

		rep := &checkReporter{cli: c}
		var err error
		result, err = runner.New(os.DirFS(c.cfg.Root), c.cfg.Scripts, rep, nil).Run(context.Background())
		if err != nil {
			return err
		}
		checks = append(checks, rep.checks...)
	}

	allPassed := true
	for _, check := range checks {
		if !check.Passed {
			allPassed = false
		}
	}

	if c.jsonOutput {
		if err := c.outputJSON(map[string]interface{}{
			"checks":     checks,
			"all_passed": allPassed,
		}); err != nil {
			return err
		}
	} else {
		c.println("")
		if allPassed {
			c.println("✓ All checks passed")
		} else {
			c.println("✗ Some checks failed - see above for details")
		}
	}

	if !configCheck.Passed {
		return fmt.Errorf("configuration is invalid")
	}
	if c.cfg.Strict && !allPassed {
		return fmt.Errorf("%w: %d/%d", errIncomplete, result.Succeeded(), result.Total())
	}
	return nil
}

func (c *CLI) checkConfig() DiagnosticCheck {
	check := DiagnosticCheck{Name: "Configuration"}

	if err := c.cfg.Validate(); err != nil {
		check.Message = "invalid"
		check.Details = err.Error()
		return check
	}

	check.Passed = true
	check.Message = fmt.Sprintf("%d script(s) listed", len(c.cfg.Scripts))
	if c.configPath != "" {
		check.Message += fmt.Sprintf(" in %s", c.configPath)
	}
	return check
}

func (c *CLI) checkRoot() DiagnosticCheck {
	check := DiagnosticCheck{Name: "Script root"}

	info, err := os.Stat(c.cfg.Root)
	switch {
	case err != nil:
		check.Message = "not accessible"
		check.Details = err.Error()
	case !info.IsDir():
		check.Message = "not a directory"
		check.Details = fmt.Sprintf("%s must be a directory; use --root to change it", c.cfg.Root)
	default:
		check.Passed = true
		check.Message = c.cfg.Root
	}
	return check
}
