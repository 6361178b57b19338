package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_RenderIsOrderStable(t *testing.T) {
	a, err := NewManifest("v4.3.0", []string{"mcuboot", "cmsis_6", "hal_nordic"}).Render()
	require.NoError(t, err)

	b, err := NewManifest("v4.3.0", []string{"hal_nordic", "mcuboot", "cmsis_6"}).Render()
	require.NoError(t, err)

	assert.Equal(t, a, b, "module ordering must not change the manifest bytes")
}

func TestManifest_RenderContainsRevisionAndModules(t *testing.T) {
	data, err := NewManifest("v4.3.0", []string{"zcbor", "mcuboot"}).Render()
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "revision: v4.3.0")
	assert.Contains(t, content, "mcuboot")
	assert.Contains(t, content, "zcbor")
	assert.Contains(t, content, "path: app")
}

func TestManifest_RenderIsDeterministic(t *testing.T) {
	m := NewManifest("v4.3.0", []string{"cmsis_6"})

	first, err := m.Render()
	require.NoError(t, err)
	second, err := m.Render()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
