package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestUint64_Deterministic returns the same hash for the same id.
func TestUint64_Deterministic(t *testing.T) {
	require.Equal(t, Uint64(42), Uint64(42))
	require.NotEqual(t, Uint64(42), Uint64(43))
}

// TestUint64_SpreadsAlignedHandles distributes page-aligned handles over low bits.
func TestUint64_SpreadsAlignedHandles(t *testing.T) {
	const mask = 63
	seen := make(map[uint64]struct{})
	for i := uint64(0); i < 1024; i++ {
		seen[Uint64(0xffff000000000000+i*4096)&mask] = struct{}{}
	}
	require.Greater(t, len(seen), 32, "aligned handles must not collapse into few buckets")
}
