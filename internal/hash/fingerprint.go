// Package hash computes the fingerprints and digests reported for FCS files.
//
// Fingerprints are xxHash64 values of single segments, used to compare a
// segment before and after a rewrite. Digests are BLAKE3-256 values of whole
// files, suitable as content addresses.
package hash

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// Fingerprint computes the xxHash64 of a single segment.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest computes the hex encoded BLAKE3-256 of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
