// Package project loads the firmware project definition: which board to
// build for, which SDK modules the workspace pulls in, and the flags handed
// to the meta-build tool.
package project

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultSDKRevision is the SDK release checked out when the project does
// not pin one.
const DefaultSDKRevision = "v4.3.0"

// DefaultModules are the SDK modules every nRF build needs.
var DefaultModules = []string{"cmsis_6", "hal_nordic", "mcuboot", "zcbor"}

// Errors for project validation.
var (
	ErrNoBoard = errors.New("project must declare a board")
)

// Config is a validated project definition.
type Config struct {
	Name        string
	Board       string
	Variant     string // Zephyr board target; defaults to lowercased Board
	SDKRevision string
	Modules     []string
	BuildFlags  []string
	CMakeArgs   []string
	ConfigPath  string
	Sysbuild    bool
}

// ZephyrTarget returns the board target passed to the meta-build tool.
func (c *Config) ZephyrTarget() string {
	if c.Variant != "" {
		return c.Variant
	}
	return strings.ToLower(c.Board)
}

// LinkFlags returns the subset of build flags that are linker flags.
func (c *Config) LinkFlags() []string {
	var flags []string
	for _, f := range c.BuildFlags {
		if strings.HasPrefix(f, "-Wl,") {
			flags = append(flags, f)
		}
	}
	return flags
}

// validate checks required fields and normalizes list ordering.
func (c *Config) validate() error {
	if c.Board == "" {
		return ErrNoBoard
	}
	if c.SDKRevision == "" {
		c.SDKRevision = DefaultSDKRevision
	}
	if !semver.IsValid(c.SDKRevision) {
		return fmt.Errorf("invalid SDK revision %q: expected a semantic version like %s",
			c.SDKRevision, DefaultSDKRevision)
	}
	if len(c.Modules) == 0 {
		c.Modules = append([]string(nil), DefaultModules...)
	}
	// Module order must not leak into generated manifests.
	sort.Strings(c.Modules)
	return nil
}
