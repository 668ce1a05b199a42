// Package hash mixes opaque identities before they are used for sharding.
package hash

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Uint64 spreads an opaque 64-bit handle over all bits. Handles are often
// aligned addresses whose low bits are constant, so they cannot be masked directly.
func Uint64(id uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], id)
	return xxh3.Hash(buf[:])
}
