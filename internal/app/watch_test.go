package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"

	"github.com/dawret/framework-sdk-nrf/internal/adapters/logging"
)

func newTestWatcher(buildFn func(ctx context.Context) error) *Watcher {
	return NewWatcher(WatchOptions{
		ProjectDir: "/proj",
		Debounce:   10 * time.Millisecond,
	}, logging.NewNopLogger(), buildFn)
}

func TestWatcher_RelevantFiltersBuildOutputs(t *testing.T) {
	w := newTestWatcher(nil)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"project source", fsnotify.Event{Name: "/proj/src/main.c", Op: fsnotify.Write}, true},
		{"project file", fsnotify.Event{Name: "/proj/nrfbuild.ini", Op: fsnotify.Write}, true},
		{"overlay", fsnotify.Event{Name: "/proj/app/menuconfig.conf", Op: fsnotify.Create}, true},
		{"build output", fsnotify.Event{Name: "/proj/build/CMakeCache.txt", Op: fsnotify.Write}, false},
		{"sdk checkout", fsnotify.Event{Name: "/proj/zephyr/Kconfig", Op: fsnotify.Write}, false},
		{"module checkout", fsnotify.Event{Name: "/proj/modules/hal/file.c", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: "/proj/.west_updated", Op: fsnotify.Write}, false},
		{"editor backup", fsnotify.Event{Name: "/proj/src/main.c~", Op: fsnotify.Write}, false},
		{"swap file", fsnotify.Event{Name: "/proj/src/.main.c.swp", Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: "/proj/src/main.c", Op: fsnotify.Chmod}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestWatcher_ScheduleDebouncesBursts(t *testing.T) {
	var builds atomic.Int32
	w := newTestWatcher(func(_ context.Context) error {
		builds.Add(1)
		return nil
	})

	ctx := context.Background()
	for range 5 {
		w.schedule(ctx)
	}

	assert.Eventually(t, func() bool {
		return builds.Load() == 1
	}, time.Second, 10*time.Millisecond, "a burst of events must trigger exactly one rebuild")
}
