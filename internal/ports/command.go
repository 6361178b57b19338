// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// CommandResult represents the result of executing an external command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
	Dir     string
	Env     []string
}

// CommandRunner executes external commands. Dir is the working directory
// (empty means inherit) and Env is the full process environment in
// KEY=VALUE form (nil means inherit). A non-zero exit code is reported
// through the result, not the error; the error is reserved for failures
// to start the process at all.
type CommandRunner interface {
	Run(ctx context.Context, dir string, env []string, command string, args ...string) (CommandResult, error)
}
