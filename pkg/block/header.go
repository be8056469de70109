package block

import (
	"encoding/binary"

	"github.com/driftchain-network/driftchain/pkg/crypto"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// Header contains block metadata. Field order here is the canonical
// serialization order: parent, nonce, difficulty, timestamp,
// merkle_root.
//
// Timestamp is milliseconds since epoch. Represented as uint64 rather
// than a 128-bit integer: no value this node will ever produce or
// receive exceeds 2^64 milliseconds (more than 500 million years), so
// the wider width buys nothing but serialization overhead.
type Header struct {
	Parent     types.Hash256 `json:"parent"`
	Nonce      uint32        `json:"nonce"`
	Difficulty types.Hash256 `json:"difficulty"`
	Timestamp  uint64        `json:"timestamp"`
	MerkleRoot types.Hash256 `json:"merkle_root"`
}

// CanonicalBytes returns the canonical field-tuple encoding used for
// both hashing and PoW evaluation.
func (h *Header) CanonicalBytes() []byte {
	buf := make([]byte, 0, types.Hash256Size*3+4+8)
	buf = append(buf, h.Parent[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.Nonce)
	buf = append(buf, h.Difficulty[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, h.Timestamp)
	buf = append(buf, h.MerkleRoot[:]...)
	return buf
}

// Hash computes the header hash: SHA-256 of its canonical
// serialization. This is the block's identity.
func (h *Header) Hash() types.Hash256 {
	return crypto.Hash(h.CanonicalBytes())
}
