package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dawret/framework-sdk-nrf/internal/testutil/mocks"
)

const sampleProject = `
[project]
board = nRF52840DK
variant = nrf52840dk/nrf52840

[zephyr]
revision = v4.3.0
modules = mcuboot hal_nordic
sysbuild = true

[build]
build_flags =
    -Os
    -Wl,--gc-sections
cmake_extra_args = -DCONFIG_DEBUG=y
`

func TestLoader_LoadFullProject(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/proj/nrfbuild.ini", sampleProject)

	cfg, err := NewLoader(fs).Load("/proj/nrfbuild.ini")
	require.NoError(t, err)

	assert.Equal(t, "proj", cfg.Name, "name defaults to the project directory")
	assert.Equal(t, "nRF52840DK", cfg.Board)
	assert.Equal(t, "nrf52840dk/nrf52840", cfg.ZephyrTarget())
	assert.Equal(t, "v4.3.0", cfg.SDKRevision)
	assert.Equal(t, []string{"hal_nordic", "mcuboot"}, cfg.Modules, "modules come back sorted")
	assert.Equal(t, []string{"-Os", "-Wl,--gc-sections"}, cfg.BuildFlags)
	assert.Equal(t, []string{"-DCONFIG_DEBUG=y"}, cfg.CMakeArgs)
	assert.True(t, cfg.Sysbuild)
}

func TestLoader_DefaultsApplied(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/proj/nrfbuild.ini", "[project]\nboard = nrf52840dk\n")

	cfg, err := NewLoader(fs).Load("/proj/nrfbuild.ini")
	require.NoError(t, err)

	assert.Equal(t, DefaultSDKRevision, cfg.SDKRevision)
	assert.ElementsMatch(t, DefaultModules, cfg.Modules)
	assert.True(t, cfg.Sysbuild, "sysbuild defaults to on")
	assert.Equal(t, "nrf52840dk", cfg.ZephyrTarget())
}

func TestLoader_MissingBoardFails(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/proj/nrfbuild.ini", "[project]\nname = blinky\n")

	_, err := NewLoader(fs).Load("/proj/nrfbuild.ini")
	assert.ErrorIs(t, err, ErrNoBoard)
}

func TestLoader_InvalidRevisionFails(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/proj/nrfbuild.ini", "[project]\nboard = nrf52840dk\n[zephyr]\nrevision = latest\n")

	_, err := NewLoader(fs).Load("/proj/nrfbuild.ini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latest")
}

func TestLoader_MissingFileFails(t *testing.T) {
	fs := mocks.NewFileSystem()

	_, err := NewLoader(fs).Load("/proj/nrfbuild.ini")
	assert.Error(t, err)
}

func TestConfig_LinkFlags(t *testing.T) {
	cfg := &Config{BuildFlags: []string{"-Os", "-Wl,--gc-sections", "-g", "-Wl,-Map=out.map"}}
	assert.Equal(t, []string{"-Wl,--gc-sections", "-Wl,-Map=out.map"}, cfg.LinkFlags())
}

func TestConfig_ZephyrTargetLowercasesBoard(t *testing.T) {
	cfg := &Config{Board: "NRF52840DK"}
	assert.Equal(t, "nrf52840dk", cfg.ZephyrTarget())
}
