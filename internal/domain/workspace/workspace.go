// Package workspace drives the SDK workspace: generating the west manifest
// and glue CMake project, initializing and updating the workspace, and
// invoking the meta-build with the reconfigure decision applied.
package workspace

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dawret/framework-sdk-nrf/internal/domain/reconfigure"
	"github.com/dawret/framework-sdk-nrf/internal/ports"
	"github.com/dawret/framework-sdk-nrf/internal/templates"
)

// Layout names the directories and marker files of one workspace. All
// paths are absolute.
type Layout struct {
	ProjectDir string
	SourceDir  string
	BuildDir   string
}

// AppDir is the application directory holding generated glue files.
func (l Layout) AppDir() string {
	return filepath.Join(l.ProjectDir, "app")
}

// ZephyrDir is the SDK checkout managed by west.
func (l Layout) ZephyrDir() string {
	return filepath.Join(l.ProjectDir, "zephyr")
}

// WestDir is west's own metadata directory; its presence means the
// workspace has been initialized.
func (l Layout) WestDir() string {
	return filepath.Join(l.ProjectDir, ".west")
}

// UpdateMarker records the last completed dependency update.
func (l Layout) UpdateMarker() string {
	return filepath.Join(l.ProjectDir, ".west_updated")
}

// ManifestPath is the generated west manifest.
func (l Layout) ManifestPath() string {
	return filepath.Join(l.AppDir(), "west.yml")
}

// CMakeListsPath is the generated CMake project descriptor.
func (l Layout) CMakeListsPath() string {
	return filepath.Join(l.AppDir(), "CMakeLists.txt")
}

// OverlayPath is the optional menuconfig overlay. Absent on most projects.
func (l Layout) OverlayPath() string {
	return filepath.Join(l.AppDir(), "menuconfig.conf")
}

// CacheMarkerPath is the meta-build tool's cache marker; its existence and
// modification time stand in for "configuration completed".
func (l Layout) CacheMarkerPath() string {
	return filepath.Join(l.BuildDir, "CMakeCache.txt")
}

// ProjectInputs carries the rendering inputs for the glue project files.
type ProjectInputs struct {
	ProjectName string
	BuildFlags  []string
	LinkFlags   []string
	SourceFiles []string
}

// cmakeContext is the template data for the CMake descriptor.
type cmakeContext struct {
	ProjectName string
	BuildFlags  []string
	LinkFlags   []string
	SourceFiles []string
}

// Workspace owns one SDK workspace for the duration of a build invocation.
// Invocations must be serialized per working tree; the workspace assumes
// exclusive filesystem access and uses no locking.
type Workspace struct {
	layout   Layout
	fs       ports.FileSystem
	runner   ports.CommandRunner
	renderer ports.TemplateRenderer
	log      ports.Logger
	env      []string
	decider  *reconfigure.Decider
}

// New creates a Workspace over the given collaborators. env is the process
// environment for every meta-build invocation.
func New(layout Layout, fs ports.FileSystem, runner ports.CommandRunner, renderer ports.TemplateRenderer, log ports.Logger, env []string) *Workspace {
	return &Workspace{
		layout:   layout,
		fs:       fs,
		runner:   runner,
		renderer: renderer,
		log:      log,
		env:      env,
		decider:  reconfigure.NewDecider(fs),
	}
}

// Layout returns the workspace layout.
func (w *Workspace) Layout() Layout {
	return w.layout
}

// SetEnviron replaces the process environment used for meta-build
// invocations. Called once after the SDK environment script is loaded.
func (w *Workspace) SetEnviron(env []string) {
	w.env = env
}

// west runs the meta-build tool in the workspace root and surfaces a
// non-zero exit as a fatal typed error with the captured output.
func (w *Workspace) west(ctx context.Context, args ...string) (string, error) {
	result, err := w.runner.Run(ctx, w.layout.ProjectDir, w.env, "west", args...)
	if err != nil {
		return "", reconfigure.NewCommandFailedError("west "+strings.Join(args, " "), "", err.Error())
	}
	if !result.Success() {
		return "", reconfigure.NewCommandFailedError("west "+strings.Join(args, " "), result.Stdout, result.Stderr)
	}
	return result.Stdout, nil
}

// GenerateManifest renders the west manifest and writes it only when its
// content changed. A changed manifest raises the reconfigure flag.
func (w *Workspace) GenerateManifest(ctx context.Context, revision string, modules []string) error {
	content, err := NewManifest(revision, modules).Render()
	if err != nil {
		return err
	}
	changed, err := w.decider.WriteIfChanged(w.layout.ManifestPath(), content)
	if err != nil {
		return err
	}
	if changed {
		w.log.Info(ctx, "generated west manifest", ports.F("path", w.layout.ManifestPath()))
	}
	return nil
}

// GenerateProjectFiles renders the glue CMake descriptor from the given
// inputs and writes it only on change. Source and flag lists are sorted
// first so caller ordering never produces different bytes for the same
// inputs. A starter application source is generated only when the project
// source directory is empty.
func (w *Workspace) GenerateProjectFiles(ctx context.Context, inputs ProjectInputs) error {
	data := cmakeContext{
		ProjectName: inputs.ProjectName,
		BuildFlags:  sortedCopy(inputs.BuildFlags),
		LinkFlags:   sortedCopy(inputs.LinkFlags),
		SourceFiles: sortedCopy(inputs.SourceFiles),
	}

	content, err := w.renderer.Render(templates.NameCMakeLists, data)
	if err != nil {
		return reconfigure.NewRenderFailedError(templates.NameCMakeLists, err)
	}
	changed, err := w.decider.WriteIfChanged(w.layout.CMakeListsPath(), []byte(content))
	if err != nil {
		return err
	}
	if changed {
		w.log.Info(ctx, "generated CMakeLists.txt", ports.F("path", w.layout.CMakeListsPath()))
	}

	if w.fs.IsEmptyDir(w.layout.SourceDir) {
		starter, err := w.renderer.Render(templates.NameAppMain, data)
		if err != nil {
			return reconfigure.NewRenderFailedError(templates.NameAppMain, err)
		}
		mainPath := filepath.Join(w.layout.SourceDir, "main.c")
		if _, err := w.decider.WriteIfChanged(mainPath, []byte(starter)); err != nil {
			return err
		}
		w.log.Info(ctx, "generated starter application source", ports.F("path", mainPath))
	}
	return nil
}

// Install brings the workspace up to date: west init on first use, west
// update whenever the manifest is newer than the update marker or a
// reconfigure is already pending. A fresh install always forces a full
// reconfigure.
func (w *Workspace) Install(ctx context.Context, revision string, modules []string) error {
	if err := w.GenerateManifest(ctx, revision, modules); err != nil {
		return err
	}

	if !w.fs.Exists(w.layout.WestDir()) {
		w.log.Info(ctx, "initializing west workspace")
		if _, err := w.west(ctx, "init", "-l", "app"); err != nil {
			return err
		}
		w.decider.Force()
	}

	marker := w.layout.UpdateMarker()
	if w.updateRequired(marker) {
		w.decider.Force()
	}

	if w.decider.Forced() {
		w.log.Info(ctx, "updating SDK modules")
		if _, err := w.west(ctx, "update", "--narrow", "--fetch-opt=--depth=1"); err != nil {
			return err
		}
		if err := w.touch(marker); err != nil {
			return err
		}
	}
	return nil
}

// updateRequired reports whether the module checkout is stale relative to
// the manifest.
func (w *Workspace) updateRequired(marker string) bool {
	markerInfo, err := w.fs.GetFileInfo(marker)
	if err != nil {
		return true
	}
	manifestInfo, err := w.fs.GetFileInfo(w.layout.ManifestPath())
	if err != nil {
		return true
	}
	return manifestInfo.ModTime.After(markerInfo.ModTime)
}

// touch bumps the marker's modification time. The content records when the
// update completed; only the mtime carries meaning.
func (w *Workspace) touch(path string) error {
	stamp := strconv.FormatInt(time.Now().Unix(), 10) + "\n"
	if err := w.fs.WriteFile(path, []byte(stamp), 0o644); err != nil {
		return reconfigure.NewWriteFailedError(path, err)
	}
	return nil
}

// BuildOptions carries the per-invocation build parameters.
type BuildOptions struct {
	Board       string
	PackagesDir string
	ConfigPath  string
	Sysbuild    bool
	ExtraArgs   []string
}

// Build syncs the pinned configure arguments, decides between a full
// reconfigure and an incremental build, and invokes the meta-build.
// Returns the meta-build tool's stdout.
func (w *Workspace) Build(ctx context.Context, store ports.ConfigStore, opts BuildOptions) (string, error) {
	args := make([]string, 0, len(opts.ExtraArgs)+3)
	if w.fs.Exists(w.layout.OverlayPath()) && !w.fs.IsDir(w.layout.OverlayPath()) {
		args = append(args, "-DOVERLAY_CONFIG:FILEPATH="+w.layout.OverlayPath())
	}
	args = append(args,
		"-DPIO_PACKAGES_DIR:PATH="+opts.PackagesDir,
		"-DDOTCONFIG="+opts.ConfigPath,
	)
	args = append(args, opts.ExtraArgs...)

	pinned := reconfigure.NewPinnedArguments(store, "build.cmake-args")
	changed, err := pinned.Sync(ctx, args)
	if err != nil {
		return "", err
	}
	if changed {
		w.log.Info(ctx, "pinned configure arguments updated", ports.F("args", strings.Join(args, " ")))
		w.decider.Force()
	}

	pristine := "auto"
	if w.decider.NeedsReconfigure(
		w.layout.CacheMarkerPath(),
		w.layout.ManifestPath(),
		w.layout.CMakeListsPath(),
		w.layout.OverlayPath(),
	) {
		pristine = "always"
	}
	w.log.Info(ctx, "building firmware",
		ports.F("board", opts.Board),
		ports.F("pristine", pristine))

	sysbuild := "--no-sysbuild"
	if opts.Sysbuild {
		sysbuild = "--sysbuild"
	}
	return w.west(ctx, "build", sysbuild,
		"-p", pristine,
		"-b", opts.Board,
		"-d", w.layout.BuildDir,
		"app",
	)
}

// Flash flashes the previously built firmware with the given runner.
func (w *Workspace) Flash(ctx context.Context, flashRunner string) error {
	_, err := w.west(ctx, "flash", "-d", w.layout.BuildDir, "-r", flashRunner)
	return err
}

// LoadEnvScript sources the SDK environment script and returns the
// variables it exports. The script runs in an empty environment so only
// its own exports come back.
func (w *Workspace) LoadEnvScript(ctx context.Context, scriptPath string) (map[string]string, error) {
	result, err := w.runner.Run(ctx, "", []string{}, "/bin/bash", "-c", "source "+scriptPath+" && env")
	if err != nil {
		return nil, reconfigure.NewCommandFailedError("source "+scriptPath, "", err.Error())
	}
	if !result.Success() {
		return nil, reconfigure.NewCommandFailedError("source "+scriptPath, result.Stdout, result.Stderr)
	}

	vars := make(map[string]string)
	for _, line := range strings.Split(result.Stdout, "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found || key == "" {
			continue
		}
		vars[key] = value
	}
	return vars, nil
}

// sortedCopy returns a sorted copy of items.
func sortedCopy(items []string) []string {
	out := append([]string(nil), items...)
	sort.Strings(out)
	return out
}
