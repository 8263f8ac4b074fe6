package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
//
// The registry interns characteristic names to these 64-bit IDs so
// repeated lookups compare integers instead of strings.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
