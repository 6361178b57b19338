package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

// CommandRunner is a thread-safe test double for ports.CommandRunner.
// Results are keyed by command name and arguments; working directory and
// environment are recorded on each call but do not affect matching.
type CommandRunner struct {
	mu      sync.RWMutex
	results map[string]ports.CommandResult
	errors  map[string]error
	calls   []ports.CommandCall
}

// NewCommandRunner creates a new CommandRunner mock.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results: make(map[string]ports.CommandResult),
		errors:  make(map[string]error),
	}
}

// AddResult registers an expected command and its result.
func (m *CommandRunner) AddResult(command string, args []string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[buildKey(command, args)] = result
}

// AddError registers an expected command that should return an error.
func (m *CommandRunner) AddError(command string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[buildKey(command, args)] = err
}

// Run executes a mock command.
func (m *CommandRunner) Run(_ context.Context, dir string, env []string, command string, args ...string) (ports.CommandResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ports.CommandCall{
		Command: command,
		Args:    args,
		Dir:     dir,
		Env:     env,
	})
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	key := buildKey(command, args)
	if err, ok := m.errors[key]; ok {
		return ports.CommandResult{}, err
	}
	if result, ok := m.results[key]; ok {
		return result, nil
	}
	return ports.CommandResult{}, fmt.Errorf("no mock result for command: %s %v", command, args)
}

// Calls returns all recorded command invocations.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]ports.CommandCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallsMatching returns the recorded invocations whose command and leading
// arguments match the given prefix.
func (m *CommandRunner) CallsMatching(command string, argPrefix ...string) []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []ports.CommandCall
	for _, call := range m.calls {
		if call.Command != command || len(call.Args) < len(argPrefix) {
			continue
		}
		ok := true
		for i, p := range argPrefix {
			if call.Args[i] != p {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, call)
		}
	}
	return matched
}

// buildKey builds the lookup key for a command and its arguments.
func buildKey(command string, args []string) string {
	return command + " " + strings.Join(args, " ")
}

// Ensure CommandRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*CommandRunner)(nil)
