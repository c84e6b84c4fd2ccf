package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVersion()
		},
	}
}

func (c *CLI) runVersion() error {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Project:   c.cfg.Project,
		Dashboard: c.cfg.Dashboard,
	}

	if c.jsonOutput {
		return c.outputJSON(info)
	}

	c.printf("dbsetup %s\n", info.Version)
	c.printf("Prints SQL setup scripts for the %s SQL Editor of %s.\n", info.Dashboard, info.Project)
	c.println()
	c.printf("  commit %s, built %s\n", info.GitCommit, info.BuildDate)
	c.printf("  %s %s/%s\n", info.GoVersion, info.OS, info.Arch)

	return nil
}

// VersionInfo represents version information for JSON output.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Project   string `json:"project"`
	Dashboard string `json:"dashboard"`
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(version, commit, date string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		GitCommit = commit
	}
	if date != "" {
		BuildDate = date
	}
}

// GetVersionString returns a formatted version string.
func GetVersionString() string {
	return fmt.Sprintf("dbsetup version %s (commit: %s, built: %s)",
		Version, GitCommit, BuildDate)
}
