package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dawret/framework-sdk-nrf/internal/app"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the firmware",
	Long: `Build generates the glue project files, brings the west workspace up to
date, and invokes the meta-build. Configuration is regenerated only when
its inputs actually changed; otherwise the existing build graph is reused.`,
	RunE: runBuild,
}

var (
	buildPackagesDir  string
	buildToolchainDir string
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildPackagesDir, "packages-dir", "", "SDK package cache directory")
	buildCmd.Flags().StringVar(&buildToolchainDir, "toolchain-dir", "", "toolchain installation root")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	service, err := newBuildService()
	if err != nil {
		return err
	}

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	stdout, err := service.Run(cmd.Context(), opts)
	if verbose && stdout != "" {
		fmt.Fprintln(cmd.OutOrStdout(), stdout)
	}
	return err
}

// buildOptions assembles BuildOptions from the global and build flags,
// discovering project sources from the src directory.
func buildOptions() (app.BuildOptions, error) {
	absProject, err := filepath.Abs(projectDir)
	if err != nil {
		return app.BuildOptions{}, err
	}

	sources, err := discoverSources(filepath.Join(absProject, "src"))
	if err != nil {
		return app.BuildOptions{}, err
	}

	opts := app.BuildOptions{
		ProjectDir:   absProject,
		BuildDir:     buildDir,
		PackagesDir:  buildPackagesDir,
		ToolchainDir: buildToolchainDir,
		SourceFiles:  sources,
	}
	if opts.BuildDir != "" {
		if opts.BuildDir, err = filepath.Abs(opts.BuildDir); err != nil {
			return app.BuildOptions{}, err
		}
	}
	return opts, nil
}

// discoverSources collects the C and assembly sources under dir. A missing
// directory yields no sources; the build then generates a starter file.
func discoverSources(dir string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".c", ".cpp", ".cc", ".s":
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}
