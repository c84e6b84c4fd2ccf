// Package cli provides the command-line interface for dbsetup.
// The CLI prints SQL scripts for manual execution; it never connects to a
// database.
package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/volleytrieste/dbsetup/internal/config"
	"github.com/volleytrieste/dbsetup/internal/report"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitInternal   = 4
)

// errIncomplete is returned in strict mode when not every script was read.
var errIncomplete = stderrors.New("not every script was processed")

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config
	stdout  io.Writer
	stderr  io.Writer

	// Global flags
	configPath string
	root       string
	jsonOutput bool
	quiet      bool
	debug      bool
	strict     bool
	color      string
}

// New creates a new CLI instance writing to the given streams.
func New(stdout, stderr io.Writer) *CLI {
	cli := &CLI{stdout: stdout, stderr: stderr}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the CLI with args and returns the process exit code.
//
// Missing or unreadable scripts only change the exit code when strict mode
// is enabled; otherwise a run always exits 0.
func (c *CLI) Execute(args []string) int {
	c.rootCmd.SetArgs(args)
	err := c.rootCmd.Execute()
	switch {
	case err == nil:
		return ExitSuccess
	case stderrors.Is(err, errIncomplete):
		c.errorf("dbsetup: %v\n", err)
		return ExitValidation
	default:
		c.errorf("dbsetup: %v\n", err)
		return ExitInternal
	}
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dbsetup",
		Short: "Print SQL setup scripts for a hosted database console",
		Long: `dbsetup prints the project's SQL setup scripts, in order, so they can be
pasted into the SQL Editor of a hosted database dashboard.

It does not connect to any database and never executes SQL.

Running dbsetup without a subcommand is the same as 'dbsetup print'.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrint(nil, false)
		},
	}
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)
	cmd.Version = Version
	cmd.SetVersionTemplate(GetVersionString() + "\n")

	// Global flags
	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./dbsetup.yaml or ~/.dbsetup/dbsetup.yaml)")
	cmd.PersistentFlags().StringVar(&c.root, "root", "", "directory script paths are resolved against")
	cmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "machine-readable JSON output")
	cmd.PersistentFlags().BoolVar(&c.quiet, "quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "verbose debug logs on stderr")
	cmd.PersistentFlags().BoolVar(&c.strict, "strict", false, "exit non-zero when any script is missing or unreadable")
	cmd.PersistentFlags().StringVar(&c.color, "color", "auto", "colorize status lines: auto, always or never")

	cmd.AddCommand(c.newPrintCmd())
	cmd.AddCommand(c.newCheckCmd())
	cmd.AddCommand(c.newConfigCmd())
	cmd.AddCommand(c.newVersionCmd())

	return cmd
}

func (c *CLI) initConfig(cmd *cobra.Command) error {
	if err := report.ValidateColorMode(c.color); err != nil {
		return err
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	// Override with flags
	if c.root != "" {
		c.cfg.Root = c.root
	}
	if cmd.Flags().Changed("strict") {
		c.cfg.Strict = c.strict
	}
	if c.debug {
		c.cfg.Logging.Level = config.LevelDebug
	}

	return nil
}

// Helper functions for output

func (c *CLI) printf(format string, args ...interface{}) {
	if !c.quiet {
		fmt.Fprintf(c.stdout, format, args...)
	}
}

func (c *CLI) println(args ...interface{}) {
	if !c.quiet {
		fmt.Fprintln(c.stdout, args...)
	}
}

func (c *CLI) errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.stderr, format, args...)
}

func (c *CLI) debugf(format string, args ...interface{}) {
	if c.debug {
		fmt.Fprintf(c.stderr, "[DEBUG] "+format, args...)
	}
}

func (c *CLI) outputJSON(v interface{}) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
