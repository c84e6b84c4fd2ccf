// Package main is the entrypoint for the dbsetup CLI.
// dbsetup prints the project's SQL setup scripts so they can be pasted into
// a hosted database console.
package main

import (
	"io"
	"os"

	"github.com/volleytrieste/dbsetup/internal/cli"
)

// Set with -ldflags "-X main.version=..." at release time.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cli.SetVersionInfo(version, commit, date)
	return cli.New(stdout, stderr).Execute(args)
}
