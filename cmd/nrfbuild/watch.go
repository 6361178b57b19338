package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dawret/framework-sdk-nrf/internal/adapters/logging"
	"github.com/dawret/framework-sdk-nrf/internal/app"
	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild automatically when project files change",
	RunE:  runWatch,
}

var watchDebounce time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "delay between a change and the rebuild")
	watchCmd.Flags().StringVar(&buildPackagesDir, "packages-dir", "", "SDK package cache directory")
	watchCmd.Flags().StringVar(&buildToolchainDir, "toolchain-dir", "", "toolchain installation root")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	service, err := newBuildService()
	if err != nil {
		return err
	}

	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	log := logging.NewConsoleLogger(logging.WithLevel(level))

	buildFn := func(ctx context.Context) error {
		// Sources are rediscovered on every rebuild so new files are
		// picked up.
		opts, err := buildOptions()
		if err != nil {
			return err
		}
		_, err = service.Run(ctx, opts)
		return err
	}

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	watcher := app.NewWatcher(app.WatchOptions{
		ProjectDir: opts.ProjectDir,
		Debounce:   watchDebounce,
		BuildFirst: true,
	}, log, buildFn)

	return watcher.Start(cmd.Context())
}
