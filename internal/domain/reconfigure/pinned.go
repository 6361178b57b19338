package reconfigure

import (
	"context"
	"sort"
	"strings"

	"github.com/dawret/framework-sdk-nrf/internal/ports"
)

// PinnedArguments compares the extra configure arguments recorded in the
// meta-build tool's config store against the arguments the current
// invocation wants, and updates the store when they drifted. Drift is a
// reconfiguration signal: the tool only rereads these arguments during a
// full configure.
type PinnedArguments struct {
	store ports.ConfigStore
	key   string
}

// NewPinnedArguments creates a PinnedArguments over the given store,
// persisting under key.
func NewPinnedArguments(store ports.ConfigStore, key string) *PinnedArguments {
	return &PinnedArguments{store: store, key: key}
}

// Sync compares the stored arguments with desired, order-insensitively,
// and persists desired when they differ. A failed or empty query counts as
// "differs": a store that cannot report a previous value gives no ground
// to skip the update. A failed update is fatal. Returns whether the store
// was updated, which callers must feed into the reconfigure decision.
func (p *PinnedArguments) Sync(ctx context.Context, desired []string) (bool, error) {
	stored, ok, err := p.store.Get(ctx, p.key)
	if err == nil && ok {
		if equalUnordered(strings.Fields(stored), desired) {
			return false, nil
		}
	}

	if err := p.store.Set(ctx, p.key, strings.Join(desired, " ")); err != nil {
		return false, NewArgUpdateFailedError(p.key, err)
	}
	return true, nil
}

// equalUnordered reports whether a and b hold the same elements regardless
// of order.
func equalUnordered(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
