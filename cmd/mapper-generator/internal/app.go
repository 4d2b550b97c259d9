// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"
	"io"

	"github.com/fatih/color"
)

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup, arguments, output streams).
func Run(ctx context.Context, getenv func(string) string, args []string, stdout, stderr io.Writer) error {
	// Disable color output if NO_COLOR is set in the environment
	color.NoColor = getenv("NO_COLOR") != ""

	rootCmd := newRootCmd(&app{getenv: getenv, stdout: stdout, stderr: stderr})
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return rootCmd.ExecuteContext(ctx)
}
