package ports

import "context"

// ConfigStore is a persisted key/value store maintained by the meta-build
// tool (west's configuration file). Get reports ok=false when the key has
// never been recorded; callers must not treat that as a fault. Set failures
// are real faults and abort the build.
type ConfigStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
