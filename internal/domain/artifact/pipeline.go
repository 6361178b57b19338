// Package artifact collects the build outputs into their final form:
// a merged bootloader+application hex image and the application ELF.
package artifact

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dawret/framework-sdk-nrf/internal/domain/reconfigure"
	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

// Names of the collected outputs in the build directory.
const (
	MergedHexName = "merged.hex"
	FirmwareName  = "firmware.elf"
)

// Pipeline post-processes the outputs of a completed build.
type Pipeline struct {
	fs       ports.FileSystem
	runner   ports.CommandRunner
	log      ports.Logger
	env      []string
	buildDir string
	sdkDir   string
}

// NewPipeline creates a Pipeline over the given build and SDK directories.
func NewPipeline(fs ports.FileSystem, runner ports.CommandRunner, log ports.Logger, env []string, buildDir, sdkDir string) *Pipeline {
	return &Pipeline{
		fs:       fs,
		runner:   runner,
		log:      log,
		env:      env,
		buildDir: buildDir,
		sdkDir:   sdkDir,
	}
}

// MergedHexPath returns where MergeBootloader writes the combined image.
func (p *Pipeline) MergedHexPath() string {
	return filepath.Join(p.buildDir, MergedHexName)
}

// FirmwarePath returns where CopyFirmware places the application ELF.
func (p *Pipeline) FirmwarePath() string {
	return filepath.Join(p.buildDir, FirmwareName)
}

// MergeBootloader merges the MCUboot and application hex images into one
// flashable image using the SDK's mergehex tool. Both inputs must exist;
// a missing one means the build did not produce them and is fatal.
func (p *Pipeline) MergeBootloader(ctx context.Context) error {
	mcubootHex := filepath.Join(p.buildDir, "mcuboot", "zephyr", "zephyr.hex")
	appHex := filepath.Join(p.buildDir, "app", "zephyr", "zephyr.hex")

	for _, path := range []string{mcubootHex, appHex} {
		if !p.fs.Exists(path) {
			return reconfigure.NewArtifactMissingError(path)
		}
	}

	script := filepath.Join(p.sdkDir, "scripts", "build", "mergehex.py")
	args := []string{script, "-o", p.MergedHexPath(), mcubootHex, appHex}
	result, err := p.runner.Run(ctx, p.buildDir, p.env, "python3", args...)
	if err != nil {
		return reconfigure.NewCommandFailedError("python3 "+strings.Join(args, " "), "", err.Error())
	}
	if !result.Success() {
		return reconfigure.NewCommandFailedError("python3 "+strings.Join(args, " "), result.Stdout, result.Stderr)
	}

	p.log.Info(ctx, "merged bootloader and application images", ports.F("path", p.MergedHexPath()))
	return nil
}

// CopyFirmware copies the application ELF to its final location.
func (p *Pipeline) CopyFirmware(ctx context.Context) error {
	appElf := filepath.Join(p.buildDir, "app", "zephyr", "zephyr.elf")
	if !p.fs.Exists(appElf) {
		return reconfigure.NewArtifactMissingError(appElf)
	}
	if err := p.fs.CopyFile(appElf, p.FirmwarePath()); err != nil {
		return reconfigure.NewWriteFailedError(p.FirmwarePath(), err)
	}
	p.log.Info(ctx, "copied application ELF", ports.F("path", p.FirmwarePath()))
	return nil
}

// RemoveStale deletes a previously collected firmware ELF so a failed
// build cannot leave yesterday's binary looking current.
func (p *Pipeline) RemoveStale() error {
	path := p.FirmwarePath()
	if !p.fs.Exists(path) {
		return nil
	}
	return p.fs.Remove(path)
}
