// Package types defines core primitive types for the driftchain node.
package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash256Size is the length of a 256-bit hash in bytes.
const Hash256Size = 32

// Hash256 represents a 256-bit digest. It supports a total order by
// big-endian numeric comparison; this order defines proof-of-work
// success (block_hash <= difficulty_target).
type Hash256 [Hash256Size]byte

// IsZero returns true if the hash is all zeros.
func (h Hash256) IsZero() bool {
	return h == Hash256{}
}

// String returns the hex-encoded hash.
func (h Hash256) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns a copy of the hash as a byte slice.
func (h Hash256) Bytes() []byte {
	b := make([]byte, Hash256Size)
	copy(b, h[:])
	return b
}

// Compare returns -1, 0, or 1 comparing h to other under big-endian
// numeric order.
func (h Hash256) Compare(other Hash256) int {
	return bytes.Compare(h[:], other[:])
}

// LessOrEqual reports whether h <= other under big-endian numeric
// order. PoW success is block.Hash().LessOrEqual(header.Difficulty).
func (h Hash256) LessOrEqual(other Hash256) bool {
	return h.Compare(other) <= 0
}

// MarshalJSON encodes the hash as a hex string.
func (h Hash256) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string into a hash.
func (h *Hash256) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*h = Hash256{}
		return nil
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hash256 hex: %w", err)
	}
	if len(decoded) != Hash256Size {
		return fmt.Errorf("hash256 must be %d bytes, got %d", Hash256Size, len(decoded))
	}
	copy(h[:], decoded)
	return nil
}

// HexToHash256 converts a hex string to a Hash256.
// Returns an error if the string is not exactly 64 hex characters.
func HexToHash256(s string) (Hash256, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash256{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != Hash256Size {
		return Hash256{}, fmt.Errorf("hash256 must be %d bytes, got %d", Hash256Size, len(b))
	}
	var h Hash256
	copy(h[:], b)
	return h, nil
}
