// Package configstore provides the meta-build configuration store adapter.
package configstore

import (
	"context"
	"strings"

	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

// WestStore reads and writes west's per-workspace configuration through
// the west command line. A key that was never recorded makes west exit
// non-zero; Get reports that as ok=false rather than an error, so callers
// can treat "unset" as a decision input instead of a fault.
type WestStore struct {
	runner ports.CommandRunner
	dir    string
	env    []string
}

// NewWestStore creates a WestStore operating in the given workspace
// directory with the given process environment.
func NewWestStore(runner ports.CommandRunner, dir string, env []string) *WestStore {
	return &WestStore{runner: runner, dir: dir, env: env}
}

// Get reads a configuration value. ok is false when the key is unset or
// the query itself failed; err is reserved for a runner that could not
// execute west at all.
func (s *WestStore) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := s.runner.Run(ctx, s.dir, s.env, "west", "config", key)
	if err != nil {
		return "", false, err
	}
	if !result.Success() {
		return "", false, nil
	}
	return strings.TrimSpace(result.Stdout), true, nil
}

// Set writes a configuration value. Failures are returned to the caller;
// a store that cannot persist configure arguments cannot be built against.
func (s *WestStore) Set(ctx context.Context, key, value string) error {
	result, err := s.runner.Run(ctx, s.dir, s.env, "west", "config", key, "--", value)
	if err != nil {
		return err
	}
	if !result.Success() {
		return &SetError{Key: key, Stderr: result.Stderr}
	}
	return nil
}

// SetError reports a failed configuration write.
type SetError struct {
	Key    string
	Stderr string
}

// Error returns the formatted error message.
func (e *SetError) Error() string {
	msg := "west config write failed for key " + e.Key
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

// Ensure WestStore implements ports.ConfigStore.
var _ ports.ConfigStore = (*WestStore)(nil)
