package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

// DefaultFileName is the project file looked up in the project directory.
const DefaultFileName = "nrfbuild.ini"

// Loader loads project definitions from INI project files.
type Loader struct {
	fs ports.FileSystem
}

// NewLoader creates a new Loader.
func NewLoader(fs ports.FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads and validates the project file at path. The project name
// defaults to the name of the directory holding the file.
func (l *Loader) Load(path string) (*Config, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load project file %s: %w", path, err)
	}

	// Python-configparser style continuation lines keep multi-flag
	// values readable in the project file.
	file, err := ini.LoadSources(ini.LoadOptions{AllowPythonMultilineValues: true}, data)
	if err != nil {
		return nil, fmt.Errorf("parse project file %s: %w", path, err)
	}

	cfg := &Config{
		Name: filepath.Base(filepath.Dir(path)),
	}

	proj := file.Section("project")
	if v := proj.Key("name").String(); v != "" {
		cfg.Name = v
	}
	cfg.Board = proj.Key("board").String()
	cfg.Variant = proj.Key("variant").String()

	zephyr := file.Section("zephyr")
	cfg.SDKRevision = zephyr.Key("revision").String()
	cfg.Modules = splitList(zephyr.Key("modules").String())
	cfg.Sysbuild = zephyr.Key("sysbuild").MustBool(true)

	build := file.Section("build")
	cfg.BuildFlags = splitList(build.Key("build_flags").String())
	cfg.CMakeArgs = splitList(build.Key("cmake_extra_args").String())
	cfg.ConfigPath = build.Key("config_path").String()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("project file %s: %w", path, err)
	}
	return cfg, nil
}

// splitList splits a whitespace- or newline-separated INI value into its
// entries, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Fields(value) {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
