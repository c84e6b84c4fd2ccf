package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/volleytrieste/dbsetup/internal/observability"
	"github.com/volleytrieste/dbsetup/internal/report"
	"github.com/volleytrieste/dbsetup/internal/runner"
)

func (c *CLI) newPrintCmd() *cobra.Command {
	var includeContent bool

	cmd := &cobra.Command{
		Use:   "print [script...]",
		Short: "Print SQL scripts for copy-paste",
		Long: `Print each configured SQL script between separator banners.

Scripts are read in order. A missing or unreadable script is reported and
skipped; the remaining scripts are still printed. Positional arguments
replace the configured script list.

Example:
  dbsetup print
  dbsetup print scripts/03_views.sql --root ./supabase`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrint(args, includeContent)
		},
	}

	cmd.Flags().BoolVar(&includeContent, "include-content", false, "include script content in --json output")

	return cmd
}

func (c *CLI) runPrint(scripts []string, includeContent bool) error {
	if len(scripts) > 0 {
		c.cfg.Scripts = scripts
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	var reporter runner.Reporter
	if c.jsonOutput {
		reporter = report.NewJSONReporter(c.stdout, c.cfg.Project, includeContent)
	} else {
		styles, err := report.NewStyles(c.stdout, c.color)
		if err != nil {
			return err
		}
		reporter = report.NewTextReporter(c.stdout, report.TextOptions{
			Project:       c.cfg.Project,
			Dashboard:     c.cfg.Dashboard,
			PreviewLength: c.cfg.PreviewLength,
			BannerWidth:   c.cfg.BannerWidth,
			Quiet:         c.quiet,
		}, styles)
	}

	logger := observability.New(c.stderr, c.cfg.Logging.Level, c.cfg.Logging.Format)

	c.debugf("Reading %d script(s) from %s\n", len(c.cfg.Scripts), c.cfg.Root)

	r := runner.New(os.DirFS(c.cfg.Root), c.cfg.Scripts, reporter, logger)
	result, err := r.Run(context.Background())
	if err != nil {
		return err
	}

	if n := len(result.LogErrors); n > 0 {
		c.debugf("Event log failed for %d script(s): %v\n", n, result.LogErrors[0])
	}

	summary := logger.Summary()
	c.debugf("Run %s: %d succeeded, %d missing, %d failed, %d bytes\n",
		result.RunID, summary.Succeeded, summary.Missing, summary.Failed, summary.Bytes)

	if c.cfg.Strict && !result.Complete() {
		return fmt.Errorf("%w: %d/%d", errIncomplete, result.Succeeded(), result.Total())
	}
	return nil
}
