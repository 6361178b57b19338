// Package reconfigure decides whether the meta-build tool must regenerate
// its build graph or can reuse the existing one. The decision is driven by
// two signals: generated input files that actually changed content, and
// watched files whose modification time is newer than the build cache
// marker. Keeping the signals honest requires never rewriting an unchanged
// file, since a rewrite bumps its modification time and would force a
// pointless reconfigure on the next run.
package reconfigure

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

// Decider accumulates reconfiguration signals across one build invocation.
// The flag is monotonic: once any signal sets it, nothing clears it.
type Decider struct {
	fs     ports.FileSystem
	forced bool
}

// NewDecider creates a Decider over the given filesystem.
func NewDecider(fs ports.FileSystem) *Decider {
	return &Decider{fs: fs}
}

// Force marks the invocation as requiring a full reconfigure regardless of
// any file state, e.g. when the caller already knows configure inputs
// drifted.
func (d *Decider) Force() {
	d.forced = true
}

// Forced reports whether a full reconfigure has been requested so far.
func (d *Decider) Forced() bool {
	return d.forced
}

// WriteIfChanged materializes content at path, creating parent directories
// as needed. The file is written only when absent or byte-different from
// content; an identical file is left untouched so its modification time is
// preserved. The accumulated reconfigure flag is raised when a write
// happens. Returns whether a write happened.
func (d *Decider) WriteIfChanged(path string, content []byte) (bool, error) {
	if d.fs.Exists(path) {
		existing, err := d.fs.ReadFile(path)
		if err == nil && bytes.Equal(existing, content) {
			return false, nil
		}
	}

	if err := d.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, NewWriteFailedError(path, err)
	}
	if err := d.fs.WriteFile(path, content, 0o644); err != nil {
		return false, NewWriteFailedError(path, err)
	}

	d.forced = true
	return true, nil
}

// NeedsReconfigure computes the final decision for this invocation.
// markerPath is the meta-build tool's cache marker (CMakeCache.txt); its
// absence means configuration never completed. watched lists input files
// whose modification time, when newer than the marker, forces
// reconfiguration; a missing watched file contributes no signal, it is not
// an error. The predicate is read-only.
//
// Comparisons use filesystem timestamps, so two writes within the same
// timestamp granularity are indistinguishable. Generated inputs go through
// WriteIfChanged, whose content comparison does not depend on timestamps.
func (d *Decider) NeedsReconfigure(markerPath string, watched ...string) bool {
	if d.forced {
		return true
	}
	return needsReconfigure(d.fs, markerPath, watched, false, false)
}

// needsReconfigure is the bare predicate, independent of accumulated state.
func needsReconfigure(fs ports.FileSystem, markerPath string, watched []string, artifactChanged, forced bool) bool {
	if forced {
		return true
	}

	marker, err := fs.GetFileInfo(markerPath)
	if err != nil {
		// First configuration: the cache marker has never been written.
		return true
	}

	if artifactChanged {
		return true
	}

	for _, path := range watched {
		info, err := fs.GetFileInfo(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			// An unreadable watched file gives no mtime to compare;
			// treat it like an absent one rather than guessing.
			continue
		}
		if info.ModTime.After(marker.ModTime) {
			return true
		}
	}

	return false
}

// NeedsReconfigureAt is the stateless form of the decision predicate, for
// callers that track the artifact-changed and forced signals themselves.
func NeedsReconfigureAt(fs ports.FileSystem, markerPath string, watched []string, artifactChanged, forced bool) bool {
	return needsReconfigure(fs, markerPath, watched, artifactChanged, forced)
}
