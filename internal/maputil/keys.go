// Package maputil provides small deterministic-iteration helpers, used by
// domain registry listing.
package maputil

import "sort"

// SortedKeys returns the keys of m in ascending order. Never returns nil,
// so callers can range over the result without a nil check.
func SortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
