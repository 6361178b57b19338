package buildenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SetAndGet(t *testing.T) {
	env, err := NewBuilder().
		Set("ZEPHYR_SDK_INSTALL_DIR", "/opt/sdk").
		Build()
	require.NoError(t, err)

	value, ok := env.Get("ZEPHYR_SDK_INSTALL_DIR")
	assert.True(t, ok)
	assert.Equal(t, "/opt/sdk", value)
}

func TestBuilder_ScalarConflictIsTypedError(t *testing.T) {
	_, err := NewBuilder().
		Set("ZEPHYR_BASE", "/a").
		Set("ZEPHYR_BASE", "/b").
		Build()
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "ZEPHYR_BASE", conflict.Key)
	assert.Equal(t, "/a", conflict.Existing)
	assert.Equal(t, "/b", conflict.Proposed)
}

func TestBuilder_SettingSameValueTwiceIsNoop(t *testing.T) {
	_, err := NewBuilder().
		Set("ZEPHYR_BASE", "/a").
		Set("ZEPHYR_BASE", "/a").
		Build()
	assert.NoError(t, err)
}

func TestBuilder_PrependPathPutsNewEntriesFirst(t *testing.T) {
	env, err := NewBuilder().
		PrependPath("/opt/toolchain/bin").
		Build()
	require.NoError(t, err)

	path, ok := env.Get("PATH")
	require.True(t, ok)
	assert.Equal(t, "/opt/toolchain/bin:/usr/bin:/bin", path)
}

func TestBuilder_PrependPathDropsDuplicates(t *testing.T) {
	env, err := NewBuilder().
		PrependPath("/opt/toolchain/bin").
		PrependPath("/usr/bin:/opt/toolchain/bin").
		Build()
	require.NoError(t, err)

	path, _ := env.Get("PATH")
	assert.Equal(t, "/usr/bin:/opt/toolchain/bin:/bin", path)
}

func TestBuilder_SetAllMergesPathInsteadOfConflicting(t *testing.T) {
	env, err := NewBuilder().
		SetAll(map[string]string{
			"PATH":        "/opt/zephyr/bin",
			"ZEPHYR_BASE": "/proj/zephyr",
		}).
		Build()
	require.NoError(t, err)

	path, _ := env.Get("PATH")
	assert.Equal(t, "/opt/zephyr/bin:/usr/bin:/bin", path)

	base, _ := env.Get("ZEPHYR_BASE")
	assert.Equal(t, "/proj/zephyr", base)
}

func TestEnviron_SortedAndStable(t *testing.T) {
	env, err := NewBuilder().
		Set("B", "2").
		Set("A", "1").
		Build()
	require.NoError(t, err)

	first := env.Environ()
	second := env.Environ()
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"A=1", "B=2", "PATH=/usr/bin:/bin"}, first)
}
