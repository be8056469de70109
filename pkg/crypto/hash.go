// Package crypto provides the cryptographic primitives the core node
// treats as mandated: SHA-256 digests and Ed25519 signatures.
package crypto

import (
	"crypto/sha256"

	"github.com/driftchain-network/driftchain/pkg/types"
)

// Hash computes a SHA-256 digest of the input data.
func Hash(data []byte) types.Hash256 {
	return sha256.Sum256(data)
}

// DoubleHash computes Hash(Hash(data)).
func DoubleHash(data []byte) types.Hash256 {
	first := Hash(data)
	return Hash(first[:])
}

// HashConcat hashes the concatenation of two hashes. Used by
// pkg/block.ComputeMerkleRoot.
func HashConcat(a, b types.Hash256) types.Hash256 {
	var buf [2 * types.Hash256Size]byte
	copy(buf[:types.Hash256Size], a[:])
	copy(buf[types.Hash256Size:], b[:])
	return Hash(buf[:])
}

// AddressFromPubKey derives a Hash160 address from an Ed25519 public
// key: the first 20 bytes of SHA-256(pubkey).
func AddressFromPubKey(pubKey []byte) types.Address {
	h := Hash(pubKey)
	var addr types.Address
	copy(addr[:], h[:types.AddressSize])
	return addr
}
