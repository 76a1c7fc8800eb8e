package index

import "bytes"

// PrefixLen is the number of leading bytes of a 32-byte x-only public key
// kept as the compact author handle used throughout the index.
const PrefixLen = 8

// PubkeyPrefix is an 8-byte opaque handle derived by truncating a 32-byte
// x-only public key. Two entries with identical prefixes are treated as the
// same author for indexing purposes; collisions are tolerated since this is
// an index, not an authorization check.
type PubkeyPrefix [PrefixLen]byte

// NewPubkeyPrefix copies the first PrefixLen bytes of a 32-byte serialized
// x-only public key. Shorter inputs are zero-padded on the right.
func NewPubkeyPrefix(pubkey []byte) (p PubkeyPrefix) {
	n := copy(p[:], pubkey)
	_ = n
	return
}

// Compare orders two prefixes byte-lexicographically.
func (p PubkeyPrefix) Compare(o PubkeyPrefix) int {
	return bytes.Compare(p[:], o[:])
}

// Equal reports whether p and o denote the same author prefix.
func (p PubkeyPrefix) Equal(o PubkeyPrefix) bool { return p == o }
