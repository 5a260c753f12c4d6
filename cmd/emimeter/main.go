// Package main is the entry point for the emimeter CLI.
package main

import (
	"os"

	"github.com/rshade/emimeter/internal/cli"
	"github.com/rshade/emimeter/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the result to an exit code.
// Split from main so tests can reference it.
func run() int {
	rootCmd := cli.NewRootCmd(version.GetVersion())
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
