// Package app wires the domain components into the build, flash and watch
// services behind the CLI.
package app

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dawret/framework-sdk-nrf/internal/adapters/configstore"
	"github.com/dawret/framework-sdk-nrf/internal/domain/artifact"
	"github.com/dawret/framework-sdk-nrf/internal/domain/buildenv"
	"github.com/dawret/framework-sdk-nrf/internal/domain/project"
	"github.com/dawret/framework-sdk-nrf/internal/domain/workspace"
	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

// BuildOptions configures one build invocation.
type BuildOptions struct {
	ProjectDir   string
	BuildDir     string   // defaults to <project>/build
	PackagesDir  string   // SDK package cache handed to the configure step
	ToolchainDir string   // compiler toolchain root, prepended to PATH
	SourceFiles  []string // host-collected sources; discovered from src/ when empty
}

// BuildService runs the full firmware build: project load, workspace
// install, reconfigure decision, meta-build invocation, and artifact
// collection. One invocation is strictly sequential; callers must not run
// two builds over the same working tree concurrently.
type BuildService struct {
	fs       ports.FileSystem
	runner   ports.CommandRunner
	renderer ports.TemplateRenderer
	log      ports.Logger
}

// NewBuildService creates a BuildService over the given collaborators.
func NewBuildService(fs ports.FileSystem, runner ports.CommandRunner, renderer ports.TemplateRenderer, log ports.Logger) *BuildService {
	return &BuildService{fs: fs, runner: runner, renderer: renderer, log: log}
}

// Run executes one build invocation end to end. Returns the meta-build
// tool's stdout for verbose display.
func (s *BuildService) Run(ctx context.Context, opts BuildOptions) (string, error) {
	log := s.log.With(ports.F("run", uuid.NewString()[:8]))

	cfg, err := project.NewLoader(s.fs).Load(filepath.Join(opts.ProjectDir, project.DefaultFileName))
	if err != nil {
		return "", err
	}
	log.Info(ctx, "loaded project",
		ports.F("name", cfg.Name),
		ports.F("board", cfg.Board),
		ports.F("revision", cfg.SDKRevision))

	layout := workspace.Layout{
		ProjectDir: opts.ProjectDir,
		SourceDir:  filepath.Join(opts.ProjectDir, "src"),
		BuildDir:   opts.BuildDir,
	}
	if layout.BuildDir == "" {
		layout.BuildDir = filepath.Join(opts.ProjectDir, "build")
	}

	env, err := s.baseEnvironment(opts)
	if err != nil {
		return "", err
	}

	ws := workspace.New(layout, s.fs, s.runner, s.renderer, log, env.Environ())
	if err := ws.Install(ctx, cfg.SDKRevision, cfg.Modules); err != nil {
		return "", err
	}

	env, err = s.loadSDKEnvironment(ctx, ws, layout, opts)
	if err != nil {
		return "", err
	}
	ws.SetEnviron(env.Environ())

	pipeline := artifact.NewPipeline(s.fs, s.runner, log, env.Environ(), layout.BuildDir, layout.ZephyrDir())
	if err := pipeline.RemoveStale(); err != nil {
		return "", err
	}

	if err := ws.GenerateProjectFiles(ctx, workspace.ProjectInputs{
		ProjectName: cfg.Name,
		BuildFlags:  cfg.BuildFlags,
		LinkFlags:   cfg.LinkFlags(),
		SourceFiles: opts.SourceFiles,
	}); err != nil {
		return "", err
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(opts.ProjectDir, "config."+cfg.Name)
	}

	store := configstore.NewWestStore(s.runner, opts.ProjectDir, env.Environ())
	stdout, err := ws.Build(ctx, store, workspace.BuildOptions{
		Board:       cfg.ZephyrTarget(),
		PackagesDir: opts.PackagesDir,
		ConfigPath:  configPath,
		Sysbuild:    cfg.Sysbuild,
		ExtraArgs:   cfg.CMakeArgs,
	})
	if err != nil {
		return "", err
	}

	if cfg.Sysbuild {
		if err := pipeline.MergeBootloader(ctx); err != nil {
			return stdout, err
		}
	}
	if err := pipeline.CopyFirmware(ctx); err != nil {
		return stdout, err
	}

	log.Info(ctx, "build complete", ports.F("firmware", pipeline.FirmwarePath()))
	return stdout, nil
}

// Flash flashes the previously built firmware with the given flash runner.
func (s *BuildService) Flash(ctx context.Context, opts BuildOptions, flashRunner string) error {
	layout := workspace.Layout{
		ProjectDir: opts.ProjectDir,
		SourceDir:  filepath.Join(opts.ProjectDir, "src"),
		BuildDir:   opts.BuildDir,
	}
	if layout.BuildDir == "" {
		layout.BuildDir = filepath.Join(opts.ProjectDir, "build")
	}

	env, err := s.baseEnvironment(opts)
	if err != nil {
		return err
	}
	ws := workspace.New(layout, s.fs, s.runner, s.renderer, s.log, env.Environ())

	sdkEnv, err := s.loadSDKEnvironment(ctx, ws, layout, opts)
	if err != nil {
		return err
	}
	ws.SetEnviron(sdkEnv.Environ())

	return ws.Flash(ctx, flashRunner)
}

// baseEnvironment assembles the minimal environment every SDK invocation
// needs, before the SDK's own environment script is loaded.
func (s *BuildService) baseEnvironment(opts BuildOptions) (*buildenv.Environment, error) {
	builder := buildenv.NewBuilder()
	if opts.ToolchainDir != "" {
		builder.
			Set("ZEPHYR_SDK_INSTALL_DIR", opts.ToolchainDir).
			PrependPath(filepath.Join(opts.ToolchainDir, "arm-zephyr-eabi", "bin"))
	}
	return builder.Build()
}

// loadSDKEnvironment layers the SDK environment script's exports on top of
// the base environment. The script is optional: a workspace that has not
// checked out the SDK yet simply runs with the base environment.
func (s *BuildService) loadSDKEnvironment(ctx context.Context, ws *workspace.Workspace, layout workspace.Layout, opts BuildOptions) (*buildenv.Environment, error) {
	script := filepath.Join(layout.ZephyrDir(), "zephyr-env.sh")
	builder := buildenv.NewBuilder()
	if opts.ToolchainDir != "" {
		builder.
			Set("ZEPHYR_SDK_INSTALL_DIR", opts.ToolchainDir).
			PrependPath(filepath.Join(opts.ToolchainDir, "arm-zephyr-eabi", "bin"))
	}

	if s.fs.Exists(script) {
		vars, err := ws.LoadEnvScript(ctx, script)
		if err != nil {
			return nil, err
		}
		// The script may echo back the variable we set ourselves; the
		// builder would reject the double-set.
		delete(vars, "ZEPHYR_SDK_INSTALL_DIR")
		builder.SetAll(vars)
	}
	return builder.Build()
}
