package main

import (
	"github.com/spf13/cobra"
)

var flashCmd = &cobra.Command{
	Use:   "flash",
	Short: "Flash the built firmware to a connected device",
	RunE:  runFlash,
}

var flashRunner string

func init() {
	rootCmd.AddCommand(flashCmd)

	flashCmd.Flags().StringVarP(&flashRunner, "runner", "r", "pyocd", "flash runner to use")
	flashCmd.Flags().StringVar(&buildToolchainDir, "toolchain-dir", "", "toolchain installation root")
}

func runFlash(cmd *cobra.Command, _ []string) error {
	service, err := newBuildService()
	if err != nil {
		return err
	}

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	return service.Flash(cmd.Context(), opts, flashRunner)
}
