package lock

import (
	"context"
	"slices"
)

// Locker serializes work on a set of keys. The returned unlock releases every
// key and is safe to call once.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (unlock func(), err error)
}

// normalizeKeys sorts and de-duplicates keys so concurrent callers always
// acquire them in the same order.
func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
