package reconfigure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dawret/framework-sdk-nrf/internal/testutil/mocks"
)

func TestPinnedArguments_UnchangedSkipsUpdate(t *testing.T) {
	store := mocks.NewConfigStore()
	store.SetValue("build.cmake-args", "-DX=1")

	pinned := NewPinnedArguments(store, "build.cmake-args")
	changed, err := pinned.Sync(context.Background(), []string{"-DX=1"})
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, 0, store.SetCalls())
}

func TestPinnedArguments_OrderInsensitive(t *testing.T) {
	store := mocks.NewConfigStore()
	store.SetValue("build.cmake-args", "-DA=1 -DB=2")

	pinned := NewPinnedArguments(store, "build.cmake-args")
	changed, err := pinned.Sync(context.Background(), []string{"-DB=2", "-DA=1"})
	require.NoError(t, err)

	assert.False(t, changed, "argument order must not count as drift")
	assert.Equal(t, 0, store.SetCalls())
}

func TestPinnedArguments_DriftIssuesExactlyOneUpdate(t *testing.T) {
	store := mocks.NewConfigStore()
	store.SetValue("build.cmake-args", "-DX=1")

	pinned := NewPinnedArguments(store, "build.cmake-args")
	changed, err := pinned.Sync(context.Background(), []string{"-DX=2"})
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, 1, store.SetCalls())

	value, ok, err := store.Get(context.Background(), "build.cmake-args")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "-DX=2", value)
}

func TestPinnedArguments_UnsetKeyCountsAsDrift(t *testing.T) {
	store := mocks.NewConfigStore()

	pinned := NewPinnedArguments(store, "build.cmake-args")
	changed, err := pinned.Sync(context.Background(), []string{"-DX=1"})
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, 1, store.SetCalls())
}

func TestPinnedArguments_QueryFailureIsRecovered(t *testing.T) {
	store := mocks.NewConfigStore()
	store.FailGet(errors.New("config file unreadable"))

	pinned := NewPinnedArguments(store, "build.cmake-args")
	changed, err := pinned.Sync(context.Background(), []string{"-DX=1"})
	require.NoError(t, err, "a failed query is a decision input, not a fault")

	assert.True(t, changed)
	assert.Equal(t, 1, store.SetCalls())
}

func TestPinnedArguments_UpdateFailureIsFatal(t *testing.T) {
	store := mocks.NewConfigStore()
	store.FailSet(errors.New("config file read-only"))

	pinned := NewPinnedArguments(store, "build.cmake-args")
	_, err := pinned.Sync(context.Background(), []string{"-DX=1"})
	require.Error(t, err)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, ErrCodeArgUpdateFailed, buildErr.Code)
}

func TestEqualUnordered(t *testing.T) {
	assert.True(t, equalUnordered(nil, nil))
	assert.True(t, equalUnordered([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, equalUnordered([]string{"a"}, []string{"a", "a"}))
	assert.False(t, equalUnordered([]string{"a"}, []string{"b"}))
}
