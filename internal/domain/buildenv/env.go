// Package buildenv assembles the process environment handed to the
// meta-build tool. The environment is built once per invocation through a
// Builder and immutable afterwards, replacing the accumulate-by-side-effect
// pattern where any code path could mutate shared state.
package buildenv

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Environment is an immutable set of environment variables.
type Environment struct {
	vars map[string]string
}

// Get returns the value for key and whether it is set.
func (e *Environment) Get(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Environ renders the environment as sorted KEY=VALUE pairs suitable for
// process execution. Sorting keeps the output deterministic across runs.
func (e *Environment) Environ() []string {
	out := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// ConflictError reports an attempt to set a scalar variable that already
// holds a different value.
type ConflictError struct {
	Key      string
	Existing string
	Proposed string
}

// Error returns the formatted error message.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("environment variable %q is already set to %q, refusing to overwrite with %q",
		e.Key, e.Existing, e.Proposed)
}

// Builder assembles an Environment. List-valued variables such as PATH are
// merged through PrependPath; scalar variables conflict on double-set.
type Builder struct {
	vars map[string]string
	err  error
}

// NewBuilder creates a Builder seeded with a minimal PATH so subprocesses
// can find standard system tools.
func NewBuilder() *Builder {
	return &Builder{
		vars: map[string]string{"PATH": "/usr/bin:/bin"},
	}
}

// Set records a scalar variable. Setting a key that already holds a
// different value records a ConflictError surfaced by Build; setting the
// same value again is a no-op.
func (b *Builder) Set(key, value string) *Builder {
	if b.err != nil {
		return b
	}
	if existing, ok := b.vars[key]; ok && existing != value {
		b.err = &ConflictError{Key: key, Existing: existing, Proposed: value}
		return b
	}
	b.vars[key] = value
	return b
}

// SetAll records every variable in vars, in sorted key order so conflict
// reporting is deterministic.
func (b *Builder) SetAll(vars map[string]string) *Builder {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "PATH" {
			b.PrependPath(vars[k])
			continue
		}
		b.Set(k, vars[k])
	}
	return b
}

// PrependPath merges dir (which may itself be a list) into PATH, new
// entries first, dropping entries already present.
func (b *Builder) PrependPath(dir string) *Builder {
	if b.err != nil {
		return b
	}
	existing := strings.Split(b.vars["PATH"], string(os.PathListSeparator))
	incoming := strings.Split(dir, string(os.PathListSeparator))

	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, p := range append(incoming, existing...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		merged = append(merged, p)
	}
	b.vars["PATH"] = strings.Join(merged, string(os.PathListSeparator))
	return b
}

// Build returns the assembled Environment, or the first conflict recorded
// while building it.
func (b *Builder) Build() (*Environment, error) {
	if b.err != nil {
		return nil, b.err
	}
	vars := make(map[string]string, len(b.vars))
	for k, v := range b.vars {
		vars[k] = v
	}
	return &Environment{vars: vars}, nil
}
