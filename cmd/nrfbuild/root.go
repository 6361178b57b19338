package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dawret/framework-sdk-nrf/internal/adapters/command"
	"github.com/dawret/framework-sdk-nrf/internal/adapters/filesystem"
	"github.com/dawret/framework-sdk-nrf/internal/adapters/logging"
	"github.com/dawret/framework-sdk-nrf/internal/adapters/template"
	"github.com/dawret/framework-sdk-nrf/internal/app"
	"github.com/dawret/framework-sdk-nrf/internal/domain/reconfigure"
	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

var (
	// Global flags
	projectDir string
	buildDir   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "nrfbuild",
	Short: "Build bridge for nRF firmware projects",
	Long: `nrfbuild drives a west-managed Zephyr workspace from a host project:
it generates the glue project files, decides whether the meta-build must be
fully reconfigured or can be rebuilt incrementally, and collects the
flashable firmware images.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project-dir", "C", ".", "project directory")
	rootCmd.PersistentFlags().StringVarP(&buildDir, "build-dir", "d", "", "build directory (default: <project>/build)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

// newBuildService wires the real adapters into a BuildService.
func newBuildService() (*app.BuildService, error) {
	renderer, err := template.NewRenderer()
	if err != nil {
		return nil, err
	}

	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	log := logging.NewConsoleLogger(logging.WithLevel(level))

	return app.NewBuildService(
		filesystem.NewRealFileSystem(),
		command.NewRealRunner(),
		renderer,
		log,
	), nil
}

// formatError returns a user-friendly error message. With verbose=false it
// shows the message and suggestion; with verbose=true also the captured
// output and underlying cause.
func formatError(err error) string {
	var buildErr *reconfigure.BuildError
	if errors.As(err, &buildErr) {
		if verbose {
			return buildErr.Format()
		}
		msg := buildErr.Error()
		if buildErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", buildErr.Suggestion)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

func printErrorTo(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
